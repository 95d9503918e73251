package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rotaviagem/backend/internal/billing"
	"github.com/rotaviagem/backend/internal/dates"
	"github.com/rotaviagem/backend/internal/dto"
	"github.com/rotaviagem/backend/internal/models"
)

var (
	ErrMissingFields = errors.New("required fields are missing")
	ErrMissingID     = errors.New("id is required")
	ErrTripNotFound  = errors.New("trip not found")
)

// TripService owns the trip lifecycle. Every read, update and delete is
// filtered by the calling user; a trip belonging to someone else is
// indistinguishable from one that does not exist.
type TripService struct {
	db *gorm.DB
}

func NewTripService(db *gorm.DB) *TripService {
	return &TripService{db: db}
}

func forUser(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// Create validates and persists a new trip and, in the same transaction, the
// invoice row that books its value into a reporting month.
func (s *TripService) Create(userID uuid.UUID, req dto.CreateTripRequest) (*dto.TripResponse, error) {
	if req.Client == "" || req.Origin == "" || req.Destination == "" || req.StartDate == "" || req.Value == 0 || userID == uuid.Nil {
		return nil, ErrMissingFields
	}

	startDate, err := dates.ToCanonical(req.StartDate)
	if err != nil {
		return nil, err
	}
	// Sentinel dates like "0000-00-00" normalize to empty.
	if startDate == "" {
		return nil, ErrMissingFields
	}
	var endDate *string
	status := models.TripInProgress
	if req.EndDate != "" {
		canonical, err := dates.ToCanonical(req.EndDate)
		if err != nil {
			return nil, err
		}
		if canonical != "" {
			endDate = &canonical
			status = models.TripCompleted
		}
	}

	trip := models.Trip{
		ID:          uuid.New(),
		UserID:      userID,
		Origin:      req.Origin,
		Destination: req.Destination,
		Client:      req.Client,
		StartDate:   startDate,
		EndDate:     endDate,
		Value:       req.Value,
		Status:      status,
		Description: req.Description,
	}

	bucket, err := billing.Allocate(trip.StartDate, trip.EndDate)
	if err != nil {
		return nil, fmt.Errorf("allocate invoice: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&trip).Error; err != nil {
			return err
		}
		invoice := models.Invoice{
			ID:     uuid.New(),
			UserID: userID,
			TripID: trip.ID,
			Month:  bucket.Month,
			Year:   bucket.Year,
			Amount: trip.Value,
		}
		return tx.Create(&invoice).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}

	resp := tripResponse(&trip)
	return &resp, nil
}

func (s *TripService) FindAll(userID uuid.UUID) ([]dto.TripResponse, error) {
	var trips []models.Trip
	err := s.db.Scopes(forUser(userID)).Order("created_at DESC").Find(&trips).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.TripResponse, 0, len(trips))
	for i := range trips {
		out = append(out, tripResponse(&trips[i]))
	}
	return out, nil
}

func (s *TripService) FindByID(id, userID uuid.UUID) (*dto.TripResponse, error) {
	trip, err := s.loadTrip(id, userID)
	if err != nil {
		return nil, err
	}
	resp := tripResponse(trip)
	return &resp, nil
}

// Update rewrites the trip from the request. An absent end date clears any
// stored one and reverts the trip to in-progress; this is the only way a
// completed trip goes back to running.
func (s *TripService) Update(userID uuid.UUID, req dto.UpdateTripRequest) (*dto.TripResponse, error) {
	if req.ID == uuid.Nil {
		return nil, ErrMissingID
	}

	trip, err := s.loadTrip(req.ID, userID)
	if err != nil {
		return nil, err
	}

	trip.EndDate = nil
	trip.Status = models.TripInProgress
	if req.EndDate != "" {
		canonical, err := dates.ToCanonical(req.EndDate)
		if err != nil {
			return nil, err
		}
		// A sentinel end date normalizes to empty and counts as absent.
		if canonical != "" {
			trip.EndDate = &canonical
			trip.Status = models.TripCompleted
		}
	}

	if req.StartDate != "" {
		canonical, err := dates.ToCanonical(req.StartDate)
		if err != nil {
			return nil, err
		}
		if canonical != "" {
			trip.StartDate = canonical
		}
	}

	if req.Origin != "" {
		trip.Origin = req.Origin
	}
	if req.Destination != "" {
		trip.Destination = req.Destination
	}
	if req.Client != "" {
		trip.Client = req.Client
	}
	if req.Value != 0 {
		trip.Value = req.Value
	}
	if req.Description != "" {
		trip.Description = req.Description
	}

	// Save with explicit column list so the cleared end date is written out.
	err = s.db.Model(trip).Select("origin", "destination", "client", "start_date",
		"end_date", "value", "status", "description").Updates(trip).Error
	if err != nil {
		return nil, fmt.Errorf("update trip: %w", err)
	}

	resp := tripResponse(trip)
	return &resp, nil
}

// Delete removes one trip and its invoice rows. Invoices go first so a
// failure never leaves an invoice pointing at a missing trip.
func (s *TripService) Delete(id, userID uuid.UUID) error {
	trip, err := s.loadTrip(id, userID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_id = ?", trip.ID).Delete(&models.Invoice{}).Error; err != nil {
			return err
		}
		return tx.Delete(trip).Error
	})
}

// DeleteMany removes every listed trip owned by the user; ids that match
// nothing are ignored, but an entirely unmatched batch is an error.
func (s *TripService) DeleteMany(ids []uuid.UUID, userID uuid.UUID) error {
	if len(ids) == 0 {
		return ErrMissingFields
	}

	var trips []models.Trip
	if err := s.db.Scopes(forUser(userID)).Where("id IN ?", ids).Find(&trips).Error; err != nil {
		return err
	}
	if len(trips) == 0 {
		return ErrTripNotFound
	}

	matched := make([]uuid.UUID, 0, len(trips))
	for i := range trips {
		matched = append(matched, trips[i].ID)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_id IN ?", matched).Delete(&models.Invoice{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", matched).Delete(&models.Trip{}).Error
	})
}

func (s *TripService) loadTrip(id, userID uuid.UUID) (*models.Trip, error) {
	var trip models.Trip
	err := s.db.Scopes(forUser(userID)).First(&trip, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func tripResponse(t *models.Trip) dto.TripResponse {
	end := ""
	if t.EndDate != nil {
		end = dates.ToDisplay(*t.EndDate)
	}
	return dto.TripResponse{
		ID:          t.ID,
		Origin:      t.Origin,
		Destination: t.Destination,
		Client:      t.Client,
		StartDate:   dates.ToDisplay(t.StartDate),
		EndDate:     end,
		Value:       t.Value,
		Status:      t.Status,
		Description: t.Description,
	}
}
