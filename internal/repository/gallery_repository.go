package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"decora/internal/model"
)

// GalleryRepository defines gallery metadata persistence operations.
// Listings are returned newest-created first; category filters expect
// the already lower-cased value.
type GalleryRepository interface {
	Create(ctx context.Context, image *model.GalleryImage) error
	Save(ctx context.Context, image *model.GalleryImage) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.GalleryImage, error)
	List(ctx context.Context, category string, offset, limit int) ([]model.GalleryImage, error)
	ListByCategory(ctx context.Context, category string) ([]model.GalleryImage, error)
	Count(ctx context.Context, category string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository builds a GORM-backed repository.
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) Create(ctx context.Context, image *model.GalleryImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *galleryRepository) Save(ctx context.Context, image *model.GalleryImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *galleryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.GalleryImage, error) {
	var image model.GalleryImage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *galleryRepository) List(ctx context.Context, category string, offset, limit int) ([]model.GalleryImage, error) {
	var images []model.GalleryImage
	q := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *galleryRepository) ListByCategory(ctx context.Context, category string) ([]model.GalleryImage, error) {
	var images []model.GalleryImage
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at DESC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *galleryRepository) Count(ctx context.Context, category string) (int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&model.GalleryImage{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *galleryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.GalleryImage{}, "id = ?", id).Error
}
