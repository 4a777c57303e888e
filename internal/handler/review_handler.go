package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "decora/internal/errors"

	"decora/internal/service"
)

// ReviewHandler handles customer review endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ReviewRequest represents a review submission. Rating is left untyped
// because clients send it both as a number and as a string.
type ReviewRequest struct {
	Name    string      `json:"name"`
	Rating  interface{} `json:"rating"`
	Message string      `json:"message"`
}

// Create godoc
// @Summary Submit a review
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body ReviewRequest true "Review"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Response{Success: false, Message: "invalid request body"})
	}

	review, err := h.reviewService.Create(c.Request().Context(), req.Name, req.Rating, req.Message)
	if err != nil {
		return fail(c, err, "failed to submit review, please try again")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"review":  review,
	})
}

// List godoc
// @Summary List reviews
// @Tags reviews
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.Response
// @Router /reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.reviewService.List(c.Request().Context())
	if err != nil {
		return fail(c, err, "failed to load reviews")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"reviews": reviews,
	})
}

// Delete godoc
// @Summary Delete a review
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, apperrors.ErrReviewNotFound, "")
	}

	if err := h.reviewService.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err, "failed to delete review")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
