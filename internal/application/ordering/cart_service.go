// Package ordering implements cart and order application services.
package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/ordering"
	"github.com/retailbooks/backend/internal/domain/shared"
)

// CartService manages per-user carts. Adding to a cart reserves stock by
// decrementing it immediately; removals restore exactly the recorded
// reserved quantity.
type CartService struct {
	cartRepo    ordering.CartRepository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo ordering.CartRepository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *CartService) loadOrCreate(ctx context.Context, tenantID, userID uuid.UUID) (*ordering.Cart, error) {
	cart, err := s.cartRepo.FindByUser(ctx, tenantID, userID)
	if err == nil {
		return cart, nil
	}
	if err != shared.ErrNotFound {
		return nil, err
	}
	return ordering.NewCart(tenantID, userID)
}

// Get returns the user's cart, an empty one when none exists yet
func (s *CartService) Get(ctx context.Context, tenantID, userID uuid.UUID) (*CartResponse, error) {
	cart, err := s.loadOrCreate(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// AddItem reserves one unit of the product into the cart
func (s *CartService) AddItem(ctx context.Context, tenantID, userID uuid.UUID, req AddCartItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByRef(ctx, tenantID, req.ProductRef)
	if err != nil {
		return nil, err
	}
	cart, err := s.loadOrCreate(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	// reserve before mutating the cart so an out-of-stock add changes nothing
	if err := s.productRepo.AdjustStock(ctx, tenantID, product.ID, -1); err != nil {
		return nil, err
	}
	if _, err := cart.AddOne(product.ID); err != nil {
		_ = s.productRepo.AdjustStock(ctx, tenantID, product.ID, 1)
		return nil, err
	}
	if err := s.cartRepo.SaveWithItems(ctx, cart); err != nil {
		_ = s.productRepo.AdjustStock(ctx, tenantID, product.ID, 1)
		return nil, err
	}
	return toCartResponse(cart), nil
}

// DecrementItem gives back one unit of the item
func (s *CartService) DecrementItem(ctx context.Context, tenantID, userID, itemID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	item := cart.FindItem(itemID)
	if item == nil {
		return nil, shared.ErrNotFound
	}
	productID := item.ProductID

	restore, remaining, err := cart.DecrementOne(itemID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.SaveWithItems(ctx, cart); err != nil {
		return nil, err
	}
	if remaining == 0 {
		if err := s.cartRepo.DeleteItems(ctx, cart.ID, []uuid.UUID{itemID}); err != nil {
			return nil, err
		}
	}
	_ = s.productRepo.AdjustStock(ctx, tenantID, productID, restore)
	return toCartResponse(cart), nil
}

// RemoveItem drops the item and restores its recorded quantity
func (s *CartService) RemoveItem(ctx context.Context, tenantID, userID, itemID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	item := cart.FindItem(itemID)
	if item == nil {
		return nil, shared.ErrNotFound
	}
	productID := item.ProductID

	restore, err := cart.RemoveItem(itemID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.SaveWithItems(ctx, cart); err != nil {
		return nil, err
	}
	if err := s.cartRepo.DeleteItems(ctx, cart.ID, []uuid.UUID{itemID}); err != nil {
		return nil, err
	}
	_ = s.productRepo.AdjustStock(ctx, tenantID, productID, restore)
	return toCartResponse(cart), nil
}

// Clear empties the cart and restores every reservation
func (s *CartService) Clear(ctx context.Context, tenantID, userID uuid.UUID) error {
	cart, err := s.cartRepo.FindByUser(ctx, tenantID, userID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil
		}
		return err
	}
	itemIDs := make([]uuid.UUID, 0, len(cart.Items))
	for i := range cart.Items {
		itemIDs = append(itemIDs, cart.Items[i].ID)
	}

	restored := cart.Clear()
	if err := s.cartRepo.SaveWithItems(ctx, cart); err != nil {
		return err
	}
	if err := s.cartRepo.DeleteItems(ctx, cart.ID, itemIDs); err != nil {
		return err
	}
	for productID, qty := range restored {
		_ = s.productRepo.AdjustStock(ctx, tenantID, productID, qty)
	}
	return nil
}

// SelectAddress records the delivery address on the cart
func (s *CartService) SelectAddress(ctx context.Context, tenantID, userID uuid.UUID, req SelectAddressRequest) (*CartResponse, error) {
	cart, err := s.loadOrCreate(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	cart.SelectAddress(req.AddressID)
	if err := s.cartRepo.SaveWithItems(ctx, cart); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}
