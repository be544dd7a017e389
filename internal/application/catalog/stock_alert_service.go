package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/catalog"
)

// StockAlertService manages the per-tenant stock alert singleton
type StockAlertService struct {
	alertRepo catalog.StockAlertRepository
}

// NewStockAlertService creates a new StockAlertService
func NewStockAlertService(alertRepo catalog.StockAlertRepository) *StockAlertService {
	return &StockAlertService{alertRepo: alertRepo}
}

// Get returns the tenant's settings, falling back to defaults
func (s *StockAlertService) Get(ctx context.Context, tenantID uuid.UUID) (*StockAlertResponse, error) {
	settings, err := s.alertRepo.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &StockAlertResponse{
		Threshold:  settings.Threshold,
		EmailAlert: settings.EmailAlert,
		PushAlert:  settings.PushAlert,
	}, nil
}

// Update replaces the tenant's settings
func (s *StockAlertService) Update(ctx context.Context, tenantID uuid.UUID, req UpdateStockAlertRequest) (*StockAlertResponse, error) {
	settings, err := s.alertRepo.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := settings.Update(req.Threshold, req.EmailAlert, req.PushAlert); err != nil {
		return nil, err
	}
	if err := s.alertRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return &StockAlertResponse{
		Threshold:  settings.Threshold,
		EmailAlert: settings.EmailAlert,
		PushAlert:  settings.PushAlert,
	}, nil
}
