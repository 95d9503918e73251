package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotaviagem/backend/internal/dto"
	"github.com/rotaviagem/backend/internal/models"
	"github.com/rotaviagem/backend/internal/storage"
)

func newReportRequest() dto.CreateReportRequest {
	return dto.CreateReportRequest{
		Type: "Inicio de Jornada",
		Date: "15/01/2024",
		Time: "0830",
	}
}

func onePhoto() []UploadFile {
	return []UploadFile{{Name: "foto.jpg", Data: []byte("jpeg-bytes")}}
}

func TestCategoryForType(t *testing.T) {
	cases := map[string]string{
		"Inicio de Jornada":  "Jornada",
		"Fim de Jornada":     "Jornada",
		"Inicio Refeição":    "Refeição",
		"Fim Refeição":       "Refeição",
		"Inicio Pausa":       "Pausa",
		"Fim Pausa":          "Pausa",
		"Inicio Espera":      "Espera",
		"Reinicio de viagem": "Reinicio",
		"Abastecimento":      "Abastecimento",
	}
	for label, want := range cases {
		assert.Equal(t, want, CategoryForType(label), label)
	}
}

func TestReportCreateLinked(t *testing.T) {
	db := testDB(t)
	store := &fakeStore{}
	service := NewReportService(db, store)
	tripService := NewTripService(db)
	user := seedUser(t, db, "João da Silva")

	trip, err := tripService.Create(user.ID, newTripRequest())
	require.NoError(t, err)

	resp, err := service.Create(context.Background(), user.ID, &trip.ID, newReportRequest(), onePhoto())
	require.NoError(t, err)

	assert.Equal(t, "São Paulo → Santos", resp.TripName)
	assert.Equal(t, "Jornada", resp.TypeName)
	assert.Equal(t, "15/01/2024", resp.Date)
	assert.Equal(t, "08:30", resp.Time)
	require.Len(t, resp.Photos, 1)
	assert.Equal(t, []string{"upload:foto.jpg"}, store.calls)

	var photos []models.Photo
	require.NoError(t, db.Where("report_id = ?", resp.ID).Find(&photos).Error)
	assert.Len(t, photos, 1)
}

func TestReportCreateMissingTripUnlinks(t *testing.T) {
	db := testDB(t)
	service := NewReportService(db, &fakeStore{})
	user := seedUser(t, db, "João da Silva")

	ghost := uuid.New()
	resp, err := service.Create(context.Background(), user.ID, &ghost, newReportRequest(), onePhoto())
	require.NoError(t, err)

	assert.Nil(t, resp.TripID)
	assert.Equal(t, models.UnlinkedTripName, resp.TripName)
}

func TestReportCreateRequiresPhotos(t *testing.T) {
	db := testDB(t)
	service := NewReportService(db, &fakeStore{})
	user := seedUser(t, db, "João da Silva")

	_, err := service.Create(context.Background(), user.ID, nil, newReportRequest(), nil)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestReportCreateUploadFailurePersistsNothing(t *testing.T) {
	db := testDB(t)
	store := &fakeStore{failUpload: true}
	service := NewReportService(db, store)
	user := seedUser(t, db, "João da Silva")

	_, err := service.Create(context.Background(), user.ID, nil, newReportRequest(), onePhoto())
	assert.ErrorIs(t, err, storage.ErrUpload)

	var reports, photos int64
	require.NoError(t, db.Model(&models.Report{}).Count(&reports).Error)
	require.NoError(t, db.Model(&models.Photo{}).Count(&photos).Error)
	assert.Zero(t, reports)
	assert.Zero(t, photos)
}

func TestReportUpdateRelinkAndUnlink(t *testing.T) {
	db := testDB(t)
	service := NewReportService(db, &fakeStore{})
	tripService := NewTripService(db)
	user := seedUser(t, db, "João da Silva")

	trip, err := tripService.Create(user.ID, newTripRequest())
	require.NoError(t, err)

	created, err := service.Create(context.Background(), user.ID, nil, newReportRequest(), onePhoto())
	require.NoError(t, err)
	require.Equal(t, models.UnlinkedTripName, created.TripName)

	linked, err := service.Update(user.ID, dto.UpdateReportRequest{ID: created.ID, TripID: &trip.ID})
	require.NoError(t, err)
	assert.Equal(t, "São Paulo → Santos", linked.TripName)

	unlinked, err := service.Update(user.ID, dto.UpdateReportRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Nil(t, unlinked.TripID)
	assert.Equal(t, models.UnlinkedTripName, unlinked.TripName)

	ghost := uuid.New()
	_, err = service.Update(user.ID, dto.UpdateReportRequest{ID: created.ID, TripID: &ghost})
	assert.ErrorIs(t, err, ErrLinkedTrip)
}

func TestReportOwnershipIsolation(t *testing.T) {
	db := testDB(t)
	service := NewReportService(db, &fakeStore{})
	owner := seedUser(t, db, "João da Silva")
	other := seedUser(t, db, "Maria Souza")

	created, err := service.Create(context.Background(), owner.ID, nil, newReportRequest(), onePhoto())
	require.NoError(t, err)

	_, err = service.FindByID(created.ID, other.ID)
	assert.ErrorIs(t, err, ErrReportNotFound)

	err = service.Delete(context.Background(), created.ID, other.ID)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestReportDeleteRemoteFirst(t *testing.T) {
	db := testDB(t)
	store := &fakeStore{}
	service := NewReportService(db, store)
	user := seedUser(t, db, "João da Silva")

	created, err := service.Create(context.Background(), user.ID, nil, newReportRequest(), onePhoto())
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID, user.ID))
	assert.Equal(t, []string{
		"upload:foto.jpg",
		"delete:https://files.example.com/foto.jpg",
	}, store.calls)

	var count int64
	require.NoError(t, db.Model(&models.Report{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReportDeleteRemoteFailureKeepsRows(t *testing.T) {
	db := testDB(t)
	store := &fakeStore{}
	service := NewReportService(db, store)
	user := seedUser(t, db, "João da Silva")

	created, err := service.Create(context.Background(), user.ID, nil, newReportRequest(), onePhoto())
	require.NoError(t, err)

	store.failDelete = true
	err = service.Delete(context.Background(), created.ID, user.ID)
	require.Error(t, err)

	// The report and its photo rows survive a failed remote delete.
	var reports, photos int64
	require.NoError(t, db.Model(&models.Report{}).Count(&reports).Error)
	require.NoError(t, db.Model(&models.Photo{}).Count(&photos).Error)
	assert.Equal(t, int64(1), reports)
	assert.Equal(t, int64(1), photos)
}

func TestReportDeleteMany(t *testing.T) {
	db := testDB(t)
	store := &fakeStore{}
	service := NewReportService(db, store)
	user := seedUser(t, db, "João da Silva")

	first, err := service.Create(context.Background(), user.ID, nil, newReportRequest(), onePhoto())
	require.NoError(t, err)
	second, err := service.Create(context.Background(), user.ID, nil, newReportRequest(), onePhoto())
	require.NoError(t, err)

	_, err = service.DeleteMany(context.Background(), nil, user.ID)
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = service.DeleteMany(context.Background(), []uuid.UUID{uuid.New()}, user.ID)
	assert.ErrorIs(t, err, ErrReportNotFound)

	resp, err := service.DeleteMany(context.Background(), []uuid.UUID{first.ID, second.ID}, user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, resp.Deleted)
	assert.Empty(t, resp.Failed)
}
