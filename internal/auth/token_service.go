package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenExpiry is how long issued tokens stay valid. There is no refresh
// mechanism; admins log in again after expiry.
const TokenExpiry = 7 * 24 * time.Hour

var (
	// ErrTokenExpired is returned for tokens past their expiry, regardless of
	// signature validity.
	ErrTokenExpired = errors.New("token expired, please login again")
	// ErrTokenMalformed covers signature mismatch and structural corruption.
	ErrTokenMalformed = errors.New("invalid token")
	// ErrNoSecret is returned at construction when the signing secret is
	// absent. Fatal to the process, never surfaced per request.
	ErrNoSecret = errors.New("jwt signing secret is not configured")
)

// Claims carries the identity encoded in a session token.
type Claims struct {
	AdminID uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	Role    string    `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the given secret.
func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// Issue signs a token asserting the given identity for TokenExpiry.
func (s *TokenService) Issue(adminID uuid.UUID, email, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		AdminID: adminID,
		Email:   email,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token, returning the asserted identity.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenMalformed
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) || expiredClaims(tokenString) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// expiredClaims reports whether the token asserts an expires-at in the past.
// The parser stops at the first defect it finds, so a token that is both
// expired and otherwise invalid may not be reported as expired; expiry must
// win, so rejected tokens are re-read without signature verification.
func expiredClaims(tokenString string) bool {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now())
}
