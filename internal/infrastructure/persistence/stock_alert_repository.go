package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbooks/backend/internal/domain/catalog"
)

// GormStockAlertRepository implements catalog.StockAlertRepository using GORM
type GormStockAlertRepository struct {
	db *gorm.DB
}

// NewGormStockAlertRepository creates a new GormStockAlertRepository
func NewGormStockAlertRepository(db *gorm.DB) *GormStockAlertRepository {
	return &GormStockAlertRepository{db: db}
}

// Get returns the stored settings, or the defaults when absent
func (r *GormStockAlertRepository) Get(ctx context.Context, tenantID uuid.UUID) (*catalog.StockAlertSettings, error) {
	var settings catalog.StockAlertSettings
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&settings).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return catalog.DefaultStockAlertSettings(tenantID), nil
		}
		return nil, err
	}
	return &settings, nil
}

// Save creates or updates the settings singleton
func (r *GormStockAlertRepository) Save(ctx context.Context, settings *catalog.StockAlertSettings) error {
	return translateError(r.db.WithContext(ctx).Save(settings).Error)
}
