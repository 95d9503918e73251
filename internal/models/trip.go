package models

import (
	"time"

	"github.com/google/uuid"
)

// Trip status values. Status is derived from end-date presence and is kept
// consistent on every create and update.
const (
	TripInProgress = "IN_PROGRESS"
	TripCompleted  = "COMPLETED"
)

// Trip is a client engagement. Dates are stored canonically as YYYY-MM-DD
// strings; EndDate is nil while the trip is still running.
type Trip struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Origin      string    `gorm:"size:255;not null" json:"origin"`
	Destination string    `gorm:"size:255;not null" json:"destination"`
	Client      string    `gorm:"size:255;not null" json:"client"`
	StartDate   string    `gorm:"size:10;not null" json:"start_date"`
	EndDate     *string   `gorm:"size:10" json:"end_date"`
	Value       float64   `gorm:"type:numeric(10,2);not null" json:"value"`
	Status      string    `gorm:"size:20;not null" json:"status"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
}

// DisplayName is the denormalized label stored on reports that link to this
// trip.
func (t *Trip) DisplayName() string {
	return t.Origin + " → " + t.Destination
}
