package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rotaviagem/backend/internal/dto"
	"github.com/rotaviagem/backend/internal/models"
)

// InvoicingService reads the buckets the trip lifecycle writes.
type InvoicingService struct {
	db *gorm.DB
}

func NewInvoicingService(db *gorm.DB) *InvoicingService {
	return &InvoicingService{db: db}
}

// History sums invoice amounts per (month, year) bucket for the user. With
// both month and year given it returns the single matching bucket (total 0
// when nothing matches); otherwise every bucket, ordered by year then month.
func (s *InvoicingService) History(userID uuid.UUID, month, year *int) (*dto.InvoiceHistoryResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingFields
	}

	if month != nil && year != nil {
		var total float64
		err := s.db.Model(&models.Invoice{}).
			Scopes(forUser(userID)).
			Where("month = ? AND year = ?", *month, *year).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&total).Error
		if err != nil {
			return nil, err
		}
		return &dto.InvoiceHistoryResponse{
			Buckets: []dto.InvoiceBucket{{Month: *month, Year: *year, Total: total}},
		}, nil
	}

	var buckets []dto.InvoiceBucket
	err := s.db.Model(&models.Invoice{}).
		Scopes(forUser(userID)).
		Select("month, year, SUM(amount) as total").
		Group("month, year").
		Order("year ASC, month ASC").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceHistoryResponse{Buckets: buckets}, nil
}
