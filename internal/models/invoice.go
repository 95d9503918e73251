package models

import (
	"time"

	"github.com/google/uuid"
)

// Invoice assigns a trip's value to a reporting (month, year) bucket. One row
// is written when the trip is created and removed when the trip is deleted;
// rows are never updated in place.
type Invoice struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TripID    uuid.UUID `gorm:"type:uuid;not null;index" json:"trip_id"`
	Month     int       `gorm:"not null" json:"month"`
	Year      int       `gorm:"not null" json:"year"`
	Amount    float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Trip      Trip      `gorm:"foreignKey:TripID" json:"-"`
}
