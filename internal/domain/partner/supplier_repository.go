package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	shared.TenantRepository[Supplier]
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Supplier, error)
	// FindByRef resolves a supplier by id, code, or exact name, in that order.
	FindByRef(ctx context.Context, tenantID uuid.UUID, ref string) (*Supplier, error)
}
