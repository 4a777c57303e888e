package handler

import (
	"github.com/labstack/echo/v4"

	apperrors "decora/internal/errors"
)

// fail writes the error envelope for err, using fallback as the message for
// errors whose text must not reach the caller.
func fail(c echo.Context, err error, fallback string) error {
	return c.JSON(apperrors.StatusFor(err), apperrors.Response{
		Success: false,
		Message: apperrors.MessageFor(err, fallback),
	})
}
