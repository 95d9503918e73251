package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotaviagem/backend/internal/dates"
	"github.com/rotaviagem/backend/internal/dto"
	"github.com/rotaviagem/backend/internal/models"
)

func newTripRequest() dto.CreateTripRequest {
	return dto.CreateTripRequest{
		Origin:      "São Paulo",
		Destination: "Santos",
		Client:      "Transportes Oliveira",
		StartDate:   "15/01/2024",
		Value:       1000,
	}
}

func TestTripCreate(t *testing.T) {
	db := testDB(t)
	service := NewTripService(db)
	user := seedUser(t, db, "João da Silva")

	resp, err := service.Create(user.ID, newTripRequest())
	require.NoError(t, err)

	assert.Equal(t, "15/01/2024", resp.StartDate)
	assert.Empty(t, resp.EndDate)
	assert.Equal(t, models.TripInProgress, resp.Status)

	var trip models.Trip
	require.NoError(t, db.First(&trip, "id = ?", resp.ID).Error)
	assert.Equal(t, "2024-01-15", trip.StartDate)
	assert.Nil(t, trip.EndDate)

	var invoice models.Invoice
	require.NoError(t, db.First(&invoice, "trip_id = ?", resp.ID).Error)
	assert.Equal(t, 1, invoice.Month)
	assert.Equal(t, 2024, invoice.Year)
	assert.Equal(t, 1000.0, invoice.Amount)
	assert.Equal(t, user.ID, invoice.UserID)
}

func TestTripCreateEndAfterCutoff(t *testing.T) {
	db := testDB(t)
	service := NewTripService(db)
	user := seedUser(t, db, "João da Silva")

	req := newTripRequest()
	req.StartDate = "10/03/2024"
	req.EndDate = "28/03/2024"

	resp, err := service.Create(user.ID, req)
	require.NoError(t, err)
	assert.Equal(t, models.TripCompleted, resp.Status)

	// Ending after the 25th books the value into the next month.
	var invoice models.Invoice
	require.NoError(t, db.First(&invoice, "trip_id = ?", resp.ID).Error)
	assert.Equal(t, 4, invoice.Month)
	assert.Equal(t, 2024, invoice.Year)
}

func TestTripCreateValidation(t *testing.T) {
	db := testDB(t)
	service := NewTripService(db)
	user := seedUser(t, db, "João da Silva")

	req := newTripRequest()
	req.Client = ""
	_, err := service.Create(user.ID, req)
	assert.ErrorIs(t, err, ErrMissingFields)

	req = newTripRequest()
	req.StartDate = "31/02/2024"
	_, err = service.Create(user.ID, req)
	assert.ErrorIs(t, err, dates.ErrInvalidDate)

	_, err = service.Create(uuid.Nil, newTripRequest())
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestTripSentinelDates(t *testing.T) {
	db := testDB(t)
	service := NewTripService(db)
	user := seedUser(t, db, "João da Silva")

	// A "0000-00-00" end date counts as absent, not as a completion.
	req := newTripRequest()
	req.EndDate = "0000-00-00"
	created, err := service.Create(user.ID, req)
	require.NoError(t, err)
	assert.Empty(t, created.EndDate)
	assert.Equal(t, models.TripInProgress, created.Status)

	var trip models.Trip
	require.NoError(t, db.First(&trip, "id = ?", created.ID).Error)
	assert.Nil(t, trip.EndDate)

	// Same on update: a completed trip handed the sentinel reverts.
	completed, err := service.Update(user.ID, dto.UpdateTripRequest{
		ID:      created.ID,
		EndDate: "20/01/2024",
	})
	require.NoError(t, err)
	require.Equal(t, models.TripCompleted, completed.Status)

	updated, err := service.Update(user.ID, dto.UpdateTripRequest{
		ID:      created.ID,
		EndDate: "0000-00-00",
	})
	require.NoError(t, err)
	assert.Empty(t, updated.EndDate)
	assert.Equal(t, models.TripInProgress, updated.Status)

	// A sentinel start date is a missing field, not a server error.
	req = newTripRequest()
	req.StartDate = "0000-00-00"
	_, err = service.Create(user.ID, req)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestTripUpdateClearsEndDate(t *testing.T) {
	db := testDB(t)
	service := NewTripService(db)
	user := seedUser(t, db, "João da Silva")

	req := newTripRequest()
	req.EndDate = "20/01/2024"
	created, err := service.Create(user.ID, req)
	require.NoError(t, err)
	require.Equal(t, models.TripCompleted, created.Status)

	updated, err := service.Update(user.ID, dto.UpdateTripRequest{
		ID:        created.ID,
		StartDate: "15/01/2024",
	})
	require.NoError(t, err)
	assert.Empty(t, updated.EndDate)
	assert.Equal(t, models.TripInProgress, updated.Status)

	// The cleared end date must survive the round trip to the database.
	var trip models.Trip
	require.NoError(t, db.First(&trip, "id = ?", created.ID).Error)
	assert.Nil(t, trip.EndDate)
	assert.Equal(t, models.TripInProgress, trip.Status)
}

func TestTripUpdateRequiresID(t *testing.T) {
	db := testDB(t)
	service := NewTripService(db)
	user := seedUser(t, db, "João da Silva")

	_, err := service.Update(user.ID, dto.UpdateTripRequest{})
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestTripOwnershipIsolation(t *testing.T) {
	db := testDB(t)
	service := NewTripService(db)
	owner := seedUser(t, db, "João da Silva")
	other := seedUser(t, db, "Maria Souza")

	created, err := service.Create(owner.ID, newTripRequest())
	require.NoError(t, err)

	_, err = service.FindByID(created.ID, other.ID)
	assert.ErrorIs(t, err, ErrTripNotFound)

	_, err = service.Update(other.ID, dto.UpdateTripRequest{ID: created.ID, Origin: "Campinas"})
	assert.ErrorIs(t, err, ErrTripNotFound)

	err = service.Delete(created.ID, other.ID)
	assert.ErrorIs(t, err, ErrTripNotFound)

	trips, err := service.FindAll(other.ID)
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestTripDeleteRemovesInvoice(t *testing.T) {
	db := testDB(t)
	service := NewTripService(db)
	user := seedUser(t, db, "João da Silva")

	created, err := service.Create(user.ID, newTripRequest())
	require.NoError(t, err)

	require.NoError(t, service.Delete(created.ID, user.ID))

	var count int64
	require.NoError(t, db.Model(&models.Invoice{}).Where("trip_id = ?", created.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err = service.FindByID(created.ID, user.ID)
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestTripDeleteMany(t *testing.T) {
	db := testDB(t)
	service := NewTripService(db)
	owner := seedUser(t, db, "João da Silva")
	other := seedUser(t, db, "Maria Souza")

	first, err := service.Create(owner.ID, newTripRequest())
	require.NoError(t, err)
	second, err := service.Create(owner.ID, newTripRequest())
	require.NoError(t, err)
	foreign, err := service.Create(other.ID, newTripRequest())
	require.NoError(t, err)

	err = service.DeleteMany(nil, owner.ID)
	assert.ErrorIs(t, err, ErrMissingFields)

	err = service.DeleteMany([]uuid.UUID{uuid.New()}, owner.ID)
	assert.ErrorIs(t, err, ErrTripNotFound)

	// Ids belonging to someone else are ignored, not deleted.
	err = service.DeleteMany([]uuid.UUID{first.ID, second.ID, foreign.ID}, owner.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Trip{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = service.FindByID(foreign.ID, other.ID)
	assert.NoError(t, err)
}
