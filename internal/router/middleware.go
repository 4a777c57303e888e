package router

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "decora/internal/errors"

	"decora/internal/auth"
)

const authErrorKey = "auth_error"

// Auth guards admin-only routes. The token is taken from the Authorization
// Bearer header, falling back to the `token` cookie; the verified identity
// is attached to the request context under the "admin" key.
func Auth(tokens *auth.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  "admin",
		TokenLookup: "header:Authorization:Bearer ,cookie:token",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := tokens.Verify(token)
			if err != nil {
				// Stash the reason: the middleware wraps errors on the way
				// to the error handler.
				c.Set(authErrorKey, err)
				return nil, err
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			reason, _ := c.Get(authErrorKey).(error)
			message := "access denied, no token provided"
			switch {
			case errors.Is(reason, auth.ErrTokenExpired):
				message = auth.ErrTokenExpired.Error()
			case errors.Is(reason, auth.ErrTokenMalformed):
				message = auth.ErrTokenMalformed.Error()
			}
			return c.JSON(http.StatusUnauthorized, apperrors.Response{
				Success: false,
				Message: message,
			})
		},
	})
}
