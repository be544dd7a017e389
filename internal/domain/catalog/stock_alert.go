package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// DefaultStockAlertThreshold applies when no settings record exists
const DefaultStockAlertThreshold int64 = 10

// StockAlertSettings is a per-tenant singleton controlling low-stock alerts
type StockAlertSettings struct {
	shared.TenantAggregateRoot
	Threshold  int64 `gorm:"not null;default:10"`
	EmailAlert bool  `gorm:"not null;default:true"`
	PushAlert  bool  `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (StockAlertSettings) TableName() string {
	return "stock_alert_settings"
}

// DefaultStockAlertSettings returns the settings used when none are stored
func DefaultStockAlertSettings(tenantID uuid.UUID) *StockAlertSettings {
	return &StockAlertSettings{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Threshold:           DefaultStockAlertThreshold,
		EmailAlert:          true,
		PushAlert:           false,
	}
}

// Update replaces the alert configuration
func (s *StockAlertSettings) Update(threshold int64, emailAlert, pushAlert bool) error {
	if threshold < 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Threshold cannot be negative")
	}
	s.Threshold = threshold
	s.EmailAlert = emailAlert
	s.PushAlert = pushAlert
	s.UpdatedAt = time.Now()
	return nil
}
