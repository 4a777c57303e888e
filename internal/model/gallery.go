package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GalleryImage is persisted image metadata. ImageURL and PublicID are both
// written on create; a record never exists with a missing asset reference.
type GalleryImage struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ImageURL    string    `json:"imageUrl" gorm:"size:512;not null"`
	PublicID    string    `json:"publicId" gorm:"size:255;not null"`
	Title       string    `json:"title" gorm:"size:255"`
	Description string    `json:"description" gorm:"size:1024"`
	Category    string    `json:"category" gorm:"size:100;not null;index:idx_gallery_category_created,priority:1"`
	AltText     string    `json:"altText" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at" gorm:"index:idx_gallery_category_created,priority:2"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (g *GalleryImage) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// GalleryImageView is a GalleryImage plus the display URL computed for it.
type GalleryImageView struct {
	GalleryImage
	OptimizedURL string `json:"optimizedUrl"`
}
