package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "decora/internal/errors"

	"decora/internal/mail"
	"decora/internal/model"
	"decora/internal/repository"
)

// EnquiryService handles contact-form submissions.
type EnquiryService interface {
	Create(ctx context.Context, name, email, phone, message string) (*model.Enquiry, error)
	List(ctx context.Context) ([]model.Enquiry, error)
}

type enquiryService struct {
	enquiryRepo repository.EnquiryRepository
	mailer      mail.Mailer
	log         *slog.Logger
}

// NewEnquiryService creates a new enquiry service.
func NewEnquiryService(enquiryRepo repository.EnquiryRepository, mailer mail.Mailer, log *slog.Logger) EnquiryService {
	return &enquiryService{
		enquiryRepo: enquiryRepo,
		mailer:      mailer,
		log:         log,
	}
}

// Create persists the enquiry, then notifies the site owner by mail. The
// notification is dispatched in the background and is best-effort; a delivery
// failure is logged and the enquiry still counts as submitted.
func (s *enquiryService) Create(ctx context.Context, name, email, phone, message string) (*model.Enquiry, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return nil, apperrors.ErrEnquiryInvalid
	}

	enquiry := &model.Enquiry{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(phone),
		Message: message,
	}
	if err := s.enquiryRepo.Create(ctx, enquiry); err != nil {
		return nil, fmt.Errorf("create enquiry: %w", err)
	}

	if s.mailer != nil {
		// The response must not wait on the SMTP dial.
		go func(e *model.Enquiry) {
			if err := s.mailer.SendEnquiryNotification(e); err != nil {
				s.log.Error("enquiry notification", "enquiry_id", e.ID.String(), "error", err)
			}
		}(enquiry)
	}

	return enquiry, nil
}

// List returns all enquiries, newest first.
func (s *enquiryService) List(ctx context.Context) ([]model.Enquiry, error) {
	enquiries, err := s.enquiryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enquiries: %w", err)
	}
	return enquiries, nil
}
