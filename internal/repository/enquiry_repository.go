package repository

import (
	"context"

	"gorm.io/gorm"

	"decora/internal/model"
)

// EnquiryRepository defines contact enquiry persistence operations.
// Enquiries are append-only; no update or delete path exists.
type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *model.Enquiry) error
	List(ctx context.Context) ([]model.Enquiry, error)
}

type enquiryRepository struct {
	db *gorm.DB
}

// NewEnquiryRepository builds a GORM-backed repository.
func NewEnquiryRepository(db *gorm.DB) EnquiryRepository {
	return &enquiryRepository{db: db}
}

func (r *enquiryRepository) Create(ctx context.Context, enquiry *model.Enquiry) error {
	return r.db.WithContext(ctx).Create(enquiry).Error
}

func (r *enquiryRepository) List(ctx context.Context) ([]model.Enquiry, error) {
	var enquiries []model.Enquiry
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&enquiries).Error; err != nil {
		return nil, err
	}
	return enquiries, nil
}
