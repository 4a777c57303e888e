package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "decora/internal/errors"

	"decora/internal/auth"
	"decora/internal/service"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	development bool
}

// NewAuthHandler creates a new auth handler. In development mode the login
// error detail is included in 500 responses.
func NewAuthHandler(authService service.AuthService, development bool) *AuthHandler {
	return &AuthHandler{authService: authService, development: development}
}

// LoginRequest represents an admin login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	Admin   interface{} `json:"admin"`
}

// Login godoc
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /admin/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Response{Success: false, Message: "invalid request body"})
	}

	token, admin, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		resp := apperrors.Response{
			Success: false,
			Message: apperrors.MessageFor(err, "server error during login"),
		}
		if h.development && apperrors.StatusFor(err) == http.StatusInternalServerError {
			resp.Detail = err.Error()
		}
		return c.JSON(apperrors.StatusFor(err), resp)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Token:   token,
		Admin:   admin,
	})
}

// Me godoc
// @Summary Current admin account
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /admin/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := c.Get("admin").(*auth.Claims)
	if !ok {
		return c.JSON(http.StatusUnauthorized, apperrors.Response{Success: false, Message: "invalid token"})
	}

	admin, err := h.authService.GetMe(c.Request().Context(), claims.AdminID)
	if err != nil {
		return fail(c, err, "server error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"admin":   admin,
	})
}
