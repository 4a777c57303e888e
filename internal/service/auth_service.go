package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "decora/internal/errors"

	"decora/internal/auth"
	"decora/internal/model"
	"decora/internal/repository"
)

// AuthService handles admin authentication.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, admin *model.AdminView, err error)
	GetMe(ctx context.Context, id uuid.UUID) (*model.AdminView, error)
}

type authService struct {
	adminRepo repository.AdminRepository
	tokens    *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(adminRepo repository.AdminRepository, tokens *auth.TokenService) AuthService {
	return &authService{
		adminRepo: adminRepo,
		tokens:    tokens,
	}
}

// Login authenticates an admin and returns a session token plus the redacted
// account view. Unknown email and wrong password produce the same error so
// accounts cannot be enumerated.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.AdminView, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, apperrors.ErrMissingCredentials
	}

	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	view := admin.View()
	return token, &view, nil
}

// GetMe resolves the account behind a verified token.
func (s *authService) GetMe(ctx context.Context, id uuid.UUID) (*model.AdminView, error) {
	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	view := admin.View()
	return &view, nil
}
