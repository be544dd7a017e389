package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// CartRepository defines persistence for carts
type CartRepository interface {
	shared.TenantRepository[Cart]
	// FindByUser returns the user's cart, or shared.ErrNotFound
	FindByUser(ctx context.Context, tenantID, userID uuid.UUID) (*Cart, error)
	// SaveWithItems persists the cart and replaces its item rows
	SaveWithItems(ctx context.Context, cart *Cart) error
	// DeleteItems removes the given item rows
	DeleteItems(ctx context.Context, cartID uuid.UUID, itemIDs []uuid.UUID) error
}

// OrderRepository defines persistence for orders
type OrderRepository interface {
	shared.TenantRepository[Order]
	// FindByUser returns the user's orders, newest first
	FindByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]Order, error)
	// FindByGatewayOrderID resolves an order from its gateway reference
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error)
	// FindAutoProgressible returns non-terminal orders whose status has not
	// changed since the cutoff for that status
	FindAutoProgressible(ctx context.Context, cutoffs map[OrderStatus]int64) ([]Order, error)
	// SaveWithChildren persists the order together with item and timeline rows
	SaveWithChildren(ctx context.Context, order *Order) error
}
