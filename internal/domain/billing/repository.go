package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// BillRepository defines persistence operations for bills
type BillRepository interface {
	shared.TenantRepository[Bill]
	FindByBillNo(ctx context.Context, tenantID uuid.UUID, billNo string) (*Bill, error)
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]Bill, error)
	FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Bill, error)
	FindByStatuses(ctx context.Context, tenantID uuid.UUID, statuses []PaymentStatus) ([]Bill, error)
	// DeleteWithItems removes the bill and its line items.
	DeleteWithItems(ctx context.Context, tenantID, id uuid.UUID) error
}
