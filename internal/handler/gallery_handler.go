package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "decora/internal/errors"

	"decora/internal/service"
)

// maxUploadSize caps gallery image uploads at 5MB.
const maxUploadSize = 5 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// GalleryHandler handles gallery endpoints.
type GalleryHandler struct {
	galleryService service.GalleryService
}

// NewGalleryHandler creates a new gallery handler.
func NewGalleryHandler(galleryService service.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

// Upload godoc
// @Summary Upload a gallery image
// @Tags gallery
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Param category formData string true "Category"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param altText formData string false "Alt text"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /admin/gallery [post]
func (h *GalleryHandler) Upload(c echo.Context) error {
	file, cleanup, err := openUploadedFile(c)
	if err != nil {
		return fail(c, err, "upload failed, please try again")
	}
	if cleanup != nil {
		defer cleanup()
	}

	image, err := h.galleryService.Upload(c.Request().Context(), service.UploadInput{
		File:        file,
		Category:    c.FormValue("category"),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		AltText:     c.FormValue("altText"),
	})
	if err != nil {
		return fail(c, err, "upload failed, please try again")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"image":   image,
	})
}

// Update godoc
// @Summary Edit a gallery image, optionally replacing the file
// @Tags gallery
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Image id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /admin/gallery/{id} [put]
func (h *GalleryHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, apperrors.ErrImageNotFound, "")
	}

	file, cleanup, err := openUploadedFile(c)
	if err != nil && err != apperrors.ErrMissingFile {
		return fail(c, err, "update failed, please try again")
	}
	if cleanup != nil {
		defer cleanup()
	}

	params, _ := c.FormParams()
	in := service.UpdateInput{
		File:        file,
		Title:       formValuePtr(params, "title"),
		Description: formValuePtr(params, "description"),
		Category:    formValuePtr(params, "category"),
		AltText:     formValuePtr(params, "altText"),
	}

	image, err := h.galleryService.Update(c.Request().Context(), id, in)
	if err != nil {
		return fail(c, err, "update failed, please try again")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"image":   image,
	})
}

// List godoc
// @Summary List gallery images with pagination
// @Tags gallery
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param category query string false "Category filter"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.Response
// @Router /gallery [get]
func (h *GalleryHandler) List(c echo.Context) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	category := c.QueryParam("category")

	images, pagination, err := h.galleryService.List(c.Request().Context(), page, limit, category)
	if err != nil {
		return fail(c, err, "failed to fetch images")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"images":     images,
		"pagination": pagination,
	})
}

// ByCategory godoc
// @Summary List gallery images in a category
// @Tags gallery
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.Response
// @Router /gallery/{category} [get]
func (h *GalleryHandler) ByCategory(c echo.Context) error {
	images, err := h.galleryService.ListByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return fail(c, err, "failed to fetch images")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"images":  images,
	})
}

// Delete godoc
// @Summary Delete a gallery image
// @Tags gallery
// @Produce json
// @Security BearerAuth
// @Param id path string true "Image id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /admin/gallery/{id} [delete]
func (h *GalleryHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, apperrors.ErrImageNotFound, "")
	}

	if err := h.galleryService.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err, "delete failed, please try again")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "image deleted successfully",
	})
}

// openUploadedFile opens the multipart "file" part after checking the type
// allow-list and size cap. Returns ErrMissingFile when no file part is
// present; callers that treat the file as optional check for that.
func openUploadedFile(c echo.Context) (io.Reader, func(), error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, nil, apperrors.ErrMissingFile
	}
	if err := validateImageFile(fileHeader); err != nil {
		return nil, nil, err
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func validateImageFile(fh *multipart.FileHeader) error {
	if fh.Size > maxUploadSize {
		return apperrors.ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExtensions[ext] {
		return apperrors.ErrUnsupportedFileType
	}
	if ct := fh.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return apperrors.ErrUnsupportedFileType
	}
	return nil
}

func formValuePtr(params map[string][]string, name string) *string {
	if vals, ok := params[name]; ok && len(vals) > 0 {
		return &vals[0]
	}
	return nil
}

func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
