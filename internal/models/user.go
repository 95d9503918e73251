package models

import (
	"time"

	"github.com/google/uuid"
)

// User owns every trip, report and invoice row. Password is empty for
// accounts created through Google sign-in.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Username     string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password     string    `gorm:"size:255" json:"-"`
	ProfileImage string    `gorm:"type:text" json:"profile_image"`
	AuthProvider string    `gorm:"size:50;default:'local'" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
