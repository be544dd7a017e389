package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products.
//
// Stock arithmetic goes through AdjustStock, a single atomic
// increment/decrement scoped by product id. Decrements carry a
// stock-stays-non-negative guard at the storage layer; callers must treat a
// guard failure as fatal for the whole operation and persist nothing else.
type ProductRepository interface {
	shared.TenantRepository[Product]
	FindByItemCode(ctx context.Context, tenantID uuid.UUID, itemCode string) (*Product, error)
	// FindByRef resolves a product by id or, failing that, by item code.
	FindByRef(ctx context.Context, tenantID uuid.UUID, ref string) (*Product, error)
	// AdjustStock atomically applies stock = stock + delta for the product.
	// For negative deltas the update is guarded by stock + delta >= 0 and
	// returns shared.ErrInsufficientStock when the guard fails.
	AdjustStock(ctx context.Context, tenantID, productID uuid.UUID, delta int64) error
	FindLowStock(ctx context.Context, tenantID uuid.UUID, threshold int64) ([]Product, error)
}

// StockAlertRepository stores the per-tenant stock alert singleton
type StockAlertRepository interface {
	// Get returns the stored settings, or the defaults when absent.
	Get(ctx context.Context, tenantID uuid.UUID) (*StockAlertSettings, error)
	Save(ctx context.Context, settings *StockAlertSettings) error
}
