package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enquiry is a contact-form submission. Records are immutable once created
// and are never deleted by the running system.
type Enquiry struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;not null"`
	Phone     string    `json:"phone" gorm:"size:50"`
	Message   string    `json:"message" gorm:"size:2048;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Enquiry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
