package models

import "github.com/google/uuid"

// Photo is one uploaded attachment of a report. URL points at the remote
// object; the remote object is always deleted before this row is.
type Photo struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	URL      string    `gorm:"type:text;not null" json:"url"`
}
