package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin represents a dashboard account. The password is stored bcrypt-hashed
// and never serialized.
type Admin struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Role         string    `json:"role" gorm:"size:50;default:'admin'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AdminView is the redacted account shape returned by login and /admin/me.
type AdminView struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// View returns the redacted representation of the account.
func (a *Admin) View() AdminView {
	return AdminView{ID: a.ID, Email: a.Email, Role: a.Role}
}
