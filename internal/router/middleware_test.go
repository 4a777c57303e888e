package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decora/internal/auth"
)

const testSecret = "test-secret"

func newProtectedEcho(t *testing.T) (*echo.Echo, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)

	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		claims := c.Get("admin").(*auth.Claims)
		return c.JSON(http.StatusOK, map[string]string{"email": claims.Email})
	}, Auth(tokens))
	return e, tokens
}

func signedToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()
	claims := &auth.Claims{
		AdminID: uuid.New(),
		Email:   "admin@example.com",
		Role:    "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name            string
		setupRequest    func(t *testing.T, req *http.Request, tokens *auth.TokenService)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "no token",
			setupRequest:    func(t *testing.T, req *http.Request, tokens *auth.TokenService) {},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "access denied, no token provided",
		},
		{
			name: "expired token",
			setupRequest: func(t *testing.T, req *http.Request, tokens *auth.TokenService) {
				req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, testSecret, time.Now().Add(-time.Hour)))
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "token expired, please login again",
		},
		{
			name: "expired token with wrong signature still reads as expired",
			setupRequest: func(t *testing.T, req *http.Request, tokens *auth.TokenService) {
				req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, "other-secret", time.Now().Add(-time.Hour)))
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "token expired, please login again",
		},
		{
			name: "wrong signature",
			setupRequest: func(t *testing.T, req *http.Request, tokens *auth.TokenService) {
				req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, "other-secret", time.Now().Add(time.Hour)))
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "invalid token",
		},
		{
			name: "garbage token",
			setupRequest: func(t *testing.T, req *http.Request, tokens *auth.TokenService) {
				req.Header.Set(echo.HeaderAuthorization, "Bearer not.a.token")
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "invalid token",
		},
		{
			name: "valid bearer token",
			setupRequest: func(t *testing.T, req *http.Request, tokens *auth.TokenService) {
				token, err := tokens.Issue(uuid.New(), "admin@example.com", "admin")
				require.NoError(t, err)
				req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "valid token via cookie fallback",
			setupRequest: func(t *testing.T, req *http.Request, tokens *auth.TokenService) {
				token, err := tokens.Issue(uuid.New(), "admin@example.com", "admin")
				require.NoError(t, err)
				req.AddCookie(&http.Cookie{Name: "token", Value: token})
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, tokens := newProtectedEcho(t)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			tt.setupRequest(t, req, tokens)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), "admin@example.com")
			} else {
				assert.Contains(t, rec.Body.String(), tt.expectedMessage)
			}
		})
	}
}
