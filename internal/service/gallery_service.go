package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "decora/internal/errors"

	"decora/internal/asset"
	"decora/internal/cache"
	"decora/internal/model"
	"decora/internal/repository"
)

const (
	defaultPageSize  = 20
	categoryCacheTTL = 5 * time.Minute
)

// UploadInput carries a new gallery submission.
type UploadInput struct {
	File        io.Reader
	Category    string
	Title       string
	Description string
	AltText     string
}

// UpdateInput carries a gallery edit. Nil pointers mean "field not supplied";
// a nil File means the asset is not replaced.
type UpdateInput struct {
	File        io.Reader
	Title       *string
	Description *string
	Category    *string
	AltText     *string
}

// Pagination describes a page of listing results.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// GalleryService orchestrates gallery metadata against the asset store.
type GalleryService interface {
	Upload(ctx context.Context, in UploadInput) (*model.GalleryImage, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*model.GalleryImage, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page, limit int, category string) ([]model.GalleryImageView, *Pagination, error)
	ListByCategory(ctx context.Context, category string) ([]model.GalleryImageView, error)
}

type galleryService struct {
	galleryRepo repository.GalleryRepository
	assets      asset.Store
	cache       *cache.Client
	log         *slog.Logger
}

// NewGalleryService creates a new gallery service.
func NewGalleryService(galleryRepo repository.GalleryRepository, assets asset.Store, cacheClient *cache.Client, log *slog.Logger) GalleryService {
	return &galleryService{
		galleryRepo: galleryRepo,
		assets:      assets,
		cache:       cacheClient,
		log:         log,
	}
}

// Upload sends the file to the asset store, then persists the metadata. If
// the metadata write fails the remote asset is deleted again so no orphan
// stays reachable; failure of that cleanup is logged, not surfaced.
func (s *galleryService) Upload(ctx context.Context, in UploadInput) (*model.GalleryImage, error) {
	if in.File == nil {
		return nil, apperrors.ErrMissingFile
	}
	category := strings.ToLower(strings.TrimSpace(in.Category))
	if category == "" {
		return nil, apperrors.ErrMissingCategory
	}

	up, err := s.assets.Upload(ctx, in.File)
	if err != nil {
		return nil, fmt.Errorf("upload asset: %w", err)
	}
	if up.PublicID == "" || up.URL == "" {
		return nil, apperrors.ErrAssetIncomplete
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	image := &model.GalleryImage{
		ImageURL:    up.URL,
		PublicID:    up.PublicID,
		Title:       title,
		Description: description,
		Category:    category,
		AltText:     deriveAltText(in.AltText, title, description, category),
	}

	if err := s.galleryRepo.Create(ctx, image); err != nil {
		s.log.Error("gallery create failed", "category", category, "error", err)
		if derr := s.assets.Delete(ctx, up.PublicID); derr != nil {
			s.log.Error("asset cleanup after failed create", "public_id", up.PublicID, "error", derr)
		}
		return nil, apperrors.ErrUploadFailed
	}

	s.invalidateCategories(ctx, category)
	return image, nil
}

// deriveAltText picks the first non-empty candidate, in priority order:
// explicit alt text, title, description, then a synthesized category label.
func deriveAltText(altText, title, description, category string) string {
	candidates := []string{
		strings.TrimSpace(altText),
		title,
		description,
		category + " project",
	}
	for _, candidate := range candidates {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// Update applies field edits and optionally replaces the asset. The old
// asset is deleted only after the new metadata is durably saved, so the
// record never points at a deleted asset.
func (s *galleryService) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*model.GalleryImage, error) {
	image, err := s.galleryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrImageNotFound
		}
		return nil, fmt.Errorf("find gallery image: %w", err)
	}

	oldCategory := image.Category
	oldPublicID := ""
	if in.File != nil {
		up, err := s.assets.Upload(ctx, in.File)
		if err != nil {
			return nil, fmt.Errorf("upload replacement asset: %w", err)
		}
		if up.PublicID == "" || up.URL == "" {
			return nil, apperrors.ErrAssetIncomplete
		}
		oldPublicID = image.PublicID
		image.ImageURL = up.URL
		image.PublicID = up.PublicID
	}

	if in.Title != nil {
		image.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		image.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) != "" {
		image.Category = strings.ToLower(strings.TrimSpace(*in.Category))
	}
	if in.AltText != nil && strings.TrimSpace(*in.AltText) != "" {
		image.AltText = strings.TrimSpace(*in.AltText)
	}

	if err := s.galleryRepo.Save(ctx, image); err != nil {
		s.log.Error("gallery update failed", "id", id.String(), "error", err)
		return nil, apperrors.ErrUpdateFailed
	}

	if oldPublicID != "" {
		if derr := s.assets.Delete(ctx, oldPublicID); derr != nil {
			s.log.Error("old asset cleanup", "public_id", oldPublicID, "error", derr)
		}
	}

	s.invalidateCategories(ctx, oldCategory, image.Category)
	return image, nil
}

// Delete removes the asset best-effort, then removes the metadata record
// unconditionally. An unreachable record is worse than a leaked asset.
func (s *galleryService) Delete(ctx context.Context, id uuid.UUID) error {
	image, err := s.galleryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrImageNotFound
		}
		return fmt.Errorf("find gallery image: %w", err)
	}

	if image.PublicID != "" {
		if derr := s.assets.Delete(ctx, image.PublicID); derr != nil {
			s.log.Error("asset delete", "public_id", image.PublicID, "error", derr)
		}
	}

	if err := s.galleryRepo.Delete(ctx, id); err != nil {
		s.log.Error("gallery delete failed", "id", id.String(), "error", err)
		return apperrors.ErrDeleteFailed
	}

	s.invalidateCategories(ctx, image.Category)
	return nil
}

// List returns a page of images, newest first, with pagination metadata.
func (s *galleryService) List(ctx context.Context, page, limit int, category string) ([]model.GalleryImageView, *Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	category = strings.ToLower(strings.TrimSpace(category))

	offset := (page - 1) * limit
	images, err := s.galleryRepo.List(ctx, category, offset, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list gallery images: %w", err)
	}
	total, err := s.galleryRepo.Count(ctx, category)
	if err != nil {
		return nil, nil, fmt.Errorf("count gallery images: %w", err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	pagination := &Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
	return s.withDisplayURLs(images), pagination, nil
}

// ListByCategory returns every image in a category, newest first. Results
// are cached briefly; mutations invalidate the affected categories.
func (s *galleryService) ListByCategory(ctx context.Context, category string) ([]model.GalleryImageView, error) {
	category = strings.ToLower(strings.TrimSpace(category))

	key := categoryCacheKey(category)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.GalleryImageView
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	images, err := s.galleryRepo.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list gallery images by category: %w", err)
	}

	views := s.withDisplayURLs(images)
	if payload, err := json.Marshal(views); err == nil {
		_ = s.cache.Set(ctx, key, payload, categoryCacheTTL)
	}
	return views, nil
}

// withDisplayURLs attaches an optimized display URL to each image, falling
// back to the stored retrieval URL when no asset identifier is present.
func (s *galleryService) withDisplayURLs(images []model.GalleryImage) []model.GalleryImageView {
	views := make([]model.GalleryImageView, 0, len(images))
	for _, img := range images {
		url := img.ImageURL
		if img.PublicID != "" {
			if optimized, err := s.assets.OptimizedURL(img.PublicID); err == nil && optimized != "" {
				url = optimized
			}
		}
		views = append(views, model.GalleryImageView{GalleryImage: img, OptimizedURL: url})
	}
	return views
}

func categoryCacheKey(category string) string {
	return "gallery:category:" + category
}

func (s *galleryService) invalidateCategories(ctx context.Context, categories ...string) {
	seen := map[string]bool{}
	for _, c := range categories {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		_ = s.cache.Delete(ctx, categoryCacheKey(c))
	}
}
