package models

import (
	"time"

	"github.com/google/uuid"
)

// UnlinkedTripName is the sentinel trip label carried by reports that have no
// associated trip.
const UnlinkedTripName = "Sem Viagem"

// Report is a timestamped field event, optionally linked to a trip. TripName
// is a snapshot taken when the report is created or relinked, so deleting or
// renaming the trip later does not blank historical reports.
type Report struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	TripID      *uuid.UUID `gorm:"type:uuid;index" json:"trip_id"`
	TripName    string     `gorm:"size:255;not null" json:"trip_name"`
	Type        string     `gorm:"size:100;not null" json:"type"`
	Date        string     `gorm:"size:10;not null" json:"date"`
	Time        string     `gorm:"size:8;not null" json:"time"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Photos      []Photo    `gorm:"foreignKey:ReportID" json:"photos"`
	User        User       `gorm:"foreignKey:UserID" json:"-"`
}
