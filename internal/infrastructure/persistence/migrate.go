package persistence

import (
	"gorm.io/gorm"

	"github.com/retailbooks/backend/internal/domain/billing"
	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/ordering"
	"github.com/retailbooks/backend/internal/domain/partner"
	"github.com/retailbooks/backend/internal/domain/trade"
)

// AutoMigrate creates or updates the schema for every persisted aggregate.
// Order matters for foreign keys: parents before children.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.Product{},
		&catalog.StockAlertSettings{},
		&partner.Customer{},
		&partner.Supplier{},
		&ledger.Entry{},
		&billing.Bill{},
		&billing.LineItem{},
		&trade.Purchase{},
		&trade.PurchaseItem{},
		&trade.PurchaseReturn{},
		&trade.PurchaseReturnItem{},
		&trade.SaleReturn{},
		&trade.SaleReturnItem{},
		&ordering.Cart{},
		&ordering.CartItem{},
		&ordering.Order{},
		&ordering.OrderItem{},
		&ordering.TimelineEntry{},
		&sequenceCounter{},
	)
}
