package trade

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// PurchaseRepository defines persistence operations for purchases
type PurchaseRepository interface {
	shared.TenantRepository[Purchase]
	FindByPurchaseID(ctx context.Context, tenantID uuid.UUID, purchaseID string) (*Purchase, error)
	FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Purchase, error)
	DeleteWithItems(ctx context.Context, tenantID, id uuid.UUID) error
}

// PurchaseReturnRepository defines persistence operations for purchase returns
type PurchaseReturnRepository interface {
	shared.TenantRepository[PurchaseReturn]
	FindByReturnID(ctx context.Context, tenantID uuid.UUID, returnID string) (*PurchaseReturn, error)
	DeleteWithItems(ctx context.Context, tenantID, id uuid.UUID) error
}

// SaleReturnRepository defines persistence operations for sale returns
type SaleReturnRepository interface {
	shared.TenantRepository[SaleReturn]
	FindByReturnID(ctx context.Context, tenantID uuid.UUID, returnID string) (*SaleReturn, error)
	DeleteWithItems(ctx context.Context, tenantID, id uuid.UUID) error
}
