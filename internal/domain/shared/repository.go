package shared

import (
	"context"

	"github.com/google/uuid"
)

// TenantRepository is the persistence contract shared by all aggregates.
// Every document in the back office belongs to exactly one tenant, so the
// tenant-scoped lookups are the primary access path; the unscoped variants
// exist for administrative tooling and migrations.
type TenantRepository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Filter describes pagination, ordering and search criteria for list
// queries. OrderBy must be validated against a column whitelist before it
// reaches SQL; Filters carries column-equality predicates such as a
// document status.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}
