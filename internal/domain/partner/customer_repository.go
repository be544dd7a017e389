package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	shared.TenantRepository[Customer]
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Customer, error)
	FindByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (*Customer, error)
	// FindByRef resolves a customer by id, code, or phone, in that order.
	FindByRef(ctx context.Context, tenantID uuid.UUID, ref string) (*Customer, error)
	ExistsByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (bool, error)
}
