package dto

import "github.com/google/uuid"

type CreateReportRequest struct {
	Type        string `json:"type"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// UpdateReportRequest relinks the report when TripID is non-nil; a nil TripID
// unlinks it.
type UpdateReportRequest struct {
	ID          uuid.UUID  `json:"id"`
	TripID      *uuid.UUID `json:"trip_id"`
	Type        string     `json:"type"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Description string     `json:"description"`
}

type ReportResponse struct {
	ID          uuid.UUID  `json:"id"`
	TripID      *uuid.UUID `json:"trip_id"`
	TripName    string     `json:"trip_name"`
	Type        string     `json:"type"`
	TypeName    string     `json:"type_name"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Description string     `json:"description"`
	Photos      []string   `json:"photos"`
}

type DeleteReportsRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// BatchDeleteResponse reports per-id outcomes: ids whose remote photo
// deletion failed stay in place and are listed under failed.
type BatchDeleteResponse struct {
	Deleted []uuid.UUID `json:"deleted"`
	Failed  []uuid.UUID `json:"failed,omitempty"`
}
