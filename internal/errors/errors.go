package errors

import (
	"errors"
	"net/http"
)

// Sentinel errors double as the user-visible messages of the API. Anything
// not listed here is reported with a handler-provided fallback message so
// internal detail never leaks to callers.
var (
	// ErrMissingCredentials is returned when email or password is absent.
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrInvalidCredentials is returned for unknown email and wrong password
	// alike, so the two cases cannot be told apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAdminNotFound is returned when the token references a gone account.
	ErrAdminNotFound = errors.New("admin not found")

	// ErrMissingFile is returned when an upload carries no image file.
	ErrMissingFile = errors.New("image file is required")
	// ErrMissingCategory is returned when an upload carries no category.
	ErrMissingCategory = errors.New("category is required")
	// ErrUnsupportedFileType is returned for non-image upload payloads.
	ErrUnsupportedFileType = errors.New("only image files (jpeg, jpg, png, webp) are allowed")
	// ErrFileTooLarge is returned when the upload exceeds the size cap.
	ErrFileTooLarge = errors.New("image file exceeds the 5MB limit")
	// ErrAssetIncomplete is returned when the asset store reports success
	// without an identifier or URL.
	ErrAssetIncomplete = errors.New("upload failed: missing asset data")
	// ErrImageNotFound is returned when no gallery record matches the id.
	ErrImageNotFound = errors.New("image not found")
	// ErrUploadFailed is returned when the metadata write fails after upload.
	ErrUploadFailed = errors.New("upload failed, please try again")
	// ErrUpdateFailed is returned when the metadata update cannot be persisted.
	ErrUpdateFailed = errors.New("update failed, please try again")
	// ErrDeleteFailed is returned when the metadata delete fails.
	ErrDeleteFailed = errors.New("delete failed, please try again")

	// ErrEnquiryInvalid is returned when a contact submission misses a field.
	ErrEnquiryInvalid = errors.New("name, email and message are required")

	// ErrReviewInvalid is returned when a review submission misses a field.
	ErrReviewInvalid = errors.New("name, rating and message are required")
	// ErrInvalidRating is returned when the rating is not a whole number in [1,5].
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrReviewNotFound is returned when no review matches the id.
	ErrReviewNotFound = errors.New("review not found")
)

var sentinels = []error{
	ErrMissingCredentials,
	ErrInvalidCredentials,
	ErrAdminNotFound,
	ErrMissingFile,
	ErrMissingCategory,
	ErrUnsupportedFileType,
	ErrFileTooLarge,
	ErrAssetIncomplete,
	ErrImageNotFound,
	ErrUploadFailed,
	ErrUpdateFailed,
	ErrDeleteFailed,
	ErrEnquiryInvalid,
	ErrReviewInvalid,
	ErrInvalidRating,
	ErrReviewNotFound,
}

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Detail  string `json:"error,omitempty"`
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrMissingCredentials),
		errors.Is(err, ErrMissingFile),
		errors.Is(err, ErrMissingCategory),
		errors.Is(err, ErrUnsupportedFileType),
		errors.Is(err, ErrFileTooLarge),
		errors.Is(err, ErrEnquiryInvalid),
		errors.Is(err, ErrReviewInvalid),
		errors.Is(err, ErrInvalidRating):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAdminNotFound),
		errors.Is(err, ErrImageNotFound),
		errors.Is(err, ErrReviewNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// MessageFor returns the user-visible message for err: the sentinel text when
// err is one of ours, fallback otherwise.
func MessageFor(err error, fallback string) string {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return fallback
}
