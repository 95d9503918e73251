package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rotaviagem/backend/internal/dates"
	"github.com/rotaviagem/backend/internal/dto"
	"github.com/rotaviagem/backend/internal/models"
	"github.com/rotaviagem/backend/internal/storage"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrNoFiles        = errors.New("at least one photo is required")
	ErrLinkedTrip     = errors.New("linked trip does not exist")
)

// reportTypeCategories maps the fine-grained event labels the client sends to
// the coarse category shown on listings. Unknown labels pass through.
var reportTypeCategories = map[string]string{
	"Inicio de Jornada":  "Jornada",
	"Fim de Jornada":     "Jornada",
	"Inicio Refeição":    "Refeição",
	"Fim Refeição":       "Refeição",
	"Inicio Pausa":       "Pausa",
	"Fim Pausa":          "Pausa",
	"Inicio Espera":      "Espera",
	"Reinicio de viagem": "Reinicio",
}

// CategoryForType returns the coarse category for a report type label.
func CategoryForType(label string) string {
	if category, ok := reportTypeCategories[label]; ok {
		return category
	}
	return label
}

// UploadFile is one multipart file already read into memory.
type UploadFile struct {
	Name string
	Data []byte
}

// ReportService owns the report lifecycle and its attachment ordering: every
// photo is uploaded before any row is written, and on delete the remote
// object goes before the local one.
type ReportService struct {
	db    *gorm.DB
	store storage.ObjectStore
}

func NewReportService(db *gorm.DB, store storage.ObjectStore) *ReportService {
	return &ReportService{db: db, store: store}
}

// Create validates the payload, resolves the linked trip's display name,
// uploads every photo and only then persists the report with its photo rows.
// The trip lookup is deliberately not owner-filtered: the link only feeds a
// name snapshot, and a missing trip demotes the report to unlinked rather
// than failing.
func (s *ReportService) Create(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID, req dto.CreateReportRequest, files []UploadFile) (*dto.ReportResponse, error) {
	if req.Date == "" || req.Time == "" || req.Type == "" || userID == uuid.Nil {
		return nil, ErrMissingFields
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	date, err := dates.ToCanonical(req.Date)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("load report owner: %w", err)
	}

	tripName := models.UnlinkedTripName
	linkedID := tripID
	meta := storage.UploadMeta{OwnerID: userID.String(), OwnerName: user.Name}
	if tripID != nil {
		var trip models.Trip
		err := s.db.First(&trip, "id = ?", *tripID).Error
		switch {
		case err == nil:
			tripName = trip.DisplayName()
			meta.TripID = trip.ID.String()
			meta.TripName = tripName
		case errors.Is(err, gorm.ErrRecordNotFound):
			linkedID = nil
		default:
			return nil, err
		}
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := s.store.Upload(ctx, f.Data, f.Name, meta)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrUpload, err)
		}
		urls = append(urls, url)
	}

	report := models.Report{
		ID:          uuid.New(),
		UserID:      userID,
		TripID:      linkedID,
		TripName:    tripName,
		Type:        req.Type,
		Date:        date,
		Time:        dates.NormalizeTime(req.Time),
		Description: req.Description,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		for _, url := range urls {
			photo := models.Photo{ID: uuid.New(), ReportID: report.ID, URL: url}
			if err := tx.Create(&photo).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	resp := reportResponse(&report, urls)
	return &resp, nil
}

func (s *ReportService) FindByID(id, userID uuid.UUID) (*dto.ReportResponse, error) {
	report, err := s.loadReport(id, userID)
	if err != nil {
		return nil, err
	}

	urls, err := s.photoURLs(report.ID)
	if err != nil {
		return nil, err
	}
	resp := reportResponse(report, urls)
	return &resp, nil
}

func (s *ReportService) FindAll(userID uuid.UUID) ([]dto.ReportResponse, error) {
	var reports []models.Report
	err := s.db.Scopes(forUser(userID)).Order("created_at DESC").Find(&reports).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		urls, err := s.photoURLs(reports[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, reportResponse(&reports[i], urls))
	}
	return out, nil
}

// Update edits an owned report. A non-nil trip id must resolve to a real trip
// and refreshes the name snapshot; a nil one unlinks the report.
func (s *ReportService) Update(userID uuid.UUID, req dto.UpdateReportRequest) (*dto.ReportResponse, error) {
	if req.ID == uuid.Nil {
		return nil, ErrMissingID
	}

	report, err := s.loadReport(req.ID, userID)
	if err != nil {
		return nil, err
	}

	if req.Date != "" {
		canonical, err := dates.ToCanonical(req.Date)
		if err != nil {
			return nil, err
		}
		report.Date = canonical
	}
	if req.Time != "" {
		report.Time = dates.NormalizeTime(req.Time)
	}
	if req.Type != "" {
		report.Type = req.Type
	}
	if req.Description != "" {
		report.Description = req.Description
	}

	if req.TripID != nil {
		var trip models.Trip
		if err := s.db.First(&trip, "id = ?", *req.TripID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLinkedTrip
			}
			return nil, err
		}
		report.TripID = req.TripID
		report.TripName = trip.DisplayName()
	} else {
		report.TripID = nil
		report.TripName = models.UnlinkedTripName
	}

	err = s.db.Model(report).Select("trip_id", "trip_name", "type", "date",
		"time", "description").Updates(report).Error
	if err != nil {
		return nil, fmt.Errorf("update report: %w", err)
	}

	urls, err := s.photoURLs(report.ID)
	if err != nil {
		return nil, err
	}
	resp := reportResponse(report, urls)
	return &resp, nil
}

// Delete removes one owned report. Remote objects are deleted first; if any
// remote delete fails the report and its rows stay untouched.
func (s *ReportService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	report, err := s.loadReport(id, userID)
	if err != nil {
		return err
	}

	var photos []models.Photo
	if err := s.db.Where("report_id = ?", report.ID).Find(&photos).Error; err != nil {
		return err
	}

	for i := range photos {
		if err := s.store.DeleteByURL(ctx, photos[i].URL); err != nil {
			return fmt.Errorf("%w: %v", storage.ErrUpload, err)
		}
		if err := s.db.Delete(&photos[i]).Error; err != nil {
			return err
		}
	}

	return s.db.Delete(report).Error
}

// DeleteMany processes each id independently: a report whose remote photo
// deletion fails is skipped and reported back, the rest are removed.
func (s *ReportService) DeleteMany(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (*dto.BatchDeleteResponse, error) {
	if len(ids) == 0 {
		return nil, ErrMissingFields
	}

	var reports []models.Report
	if err := s.db.Scopes(forUser(userID)).Where("id IN ?", ids).Find(&reports).Error; err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, ErrReportNotFound
	}

	resp := &dto.BatchDeleteResponse{}
	for i := range reports {
		if err := s.Delete(ctx, reports[i].ID, userID); err != nil {
			resp.Failed = append(resp.Failed, reports[i].ID)
			continue
		}
		resp.Deleted = append(resp.Deleted, reports[i].ID)
	}
	return resp, nil
}

func (s *ReportService) loadReport(id, userID uuid.UUID) (*models.Report, error) {
	var report models.Report
	err := s.db.Scopes(forUser(userID)).First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (s *ReportService) photoURLs(reportID uuid.UUID) ([]string, error) {
	var photos []models.Photo
	if err := s.db.Where("report_id = ?", reportID).Find(&photos).Error; err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(photos))
	for i := range photos {
		urls = append(urls, photos[i].URL)
	}
	return urls, nil
}

func reportResponse(r *models.Report, photoURLs []string) dto.ReportResponse {
	return dto.ReportResponse{
		ID:          r.ID,
		TripID:      r.TripID,
		TripName:    r.TripName,
		Type:        r.Type,
		TypeName:    CategoryForType(r.Type),
		Date:        dates.ToDisplay(r.Date),
		Time:        dates.NormalizeTime(r.Time),
		Description: r.Description,
		Photos:      photoURLs,
	}
}
