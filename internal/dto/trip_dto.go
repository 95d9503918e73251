package dto

import "github.com/google/uuid"

// CreateTripRequest carries dates in DD/MM/YYYY display form, exactly as the
// frontend sends them.
type CreateTripRequest struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Client      string  `json:"client"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
}

// UpdateTripRequest replaces the trip's fields wholesale; an empty end date
// reverts the trip to in-progress.
type UpdateTripRequest struct {
	ID          uuid.UUID `json:"id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Client      string    `json:"client"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Value       float64   `json:"value"`
	Description string    `json:"description"`
}

type TripResponse struct {
	ID          uuid.UUID `json:"id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Client      string    `json:"client"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Value       float64   `json:"value"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
}

type DeleteTripsRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
