package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "decora/internal/errors"

	"decora/internal/service"
)

// EnquiryHandler handles contact-form endpoints.
type EnquiryHandler struct {
	enquiryService service.EnquiryService
}

// NewEnquiryHandler creates a new enquiry handler.
func NewEnquiryHandler(enquiryService service.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{enquiryService: enquiryService}
}

// EnquiryRequest represents a contact-form submission.
type EnquiryRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

// Create godoc
// @Summary Submit a contact enquiry
// @Tags contact
// @Accept json
// @Produce json
// @Param request body EnquiryRequest true "Enquiry"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /contact [post]
func (h *EnquiryHandler) Create(c echo.Context) error {
	var req EnquiryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Response{Success: false, Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, apperrors.ErrEnquiryInvalid, "")
	}

	if _, err := h.enquiryService.Create(c.Request().Context(), req.Name, req.Email, req.Phone, req.Message); err != nil {
		return fail(c, err, "server error")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "enquiry submitted successfully",
	})
}

// List godoc
// @Summary List contact enquiries
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Enquiry
// @Failure 500 {object} errors.Response
// @Router /contact [get]
func (h *EnquiryHandler) List(c echo.Context) error {
	enquiries, err := h.enquiryService.List(c.Request().Context())
	if err != nil {
		return fail(c, err, "server error")
	}
	return c.JSON(http.StatusOK, enquiries)
}
