// Package ordering implements the shopping cart and customer orders with
// their status and payment state machines.
package ordering

import (
	"time"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// CartItem is a quantity of one product reserved in a cart. The recorded
// quantity is the exact amount of stock the cart holds for the product;
// releases restore this recorded value, never a recomputed one.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int64     `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// Cart is a per-user mutable collection of reserved products plus a selected
// delivery address. Stock is reserved by direct decrement at add time and
// restored on remove/clear; the application layer owns those stock calls.
type Cart struct {
	shared.TenantAggregateRoot
	UserID            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_carts_tenant_user,priority:2"`
	Items             []CartItem `gorm:"foreignKey:CartID;references:ID"`
	SelectedAddressID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for a user
func NewCart(tenantID, userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "User ID cannot be empty")
	}
	return &Cart{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UserID:              userID,
		Items:               make([]CartItem, 0),
	}, nil
}

// FindItem returns the cart item with the given id, or nil
func (c *Cart) FindItem(itemID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// FindItemByProduct returns the cart item for the product, or nil
func (c *Cart) FindItemByProduct(productID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// AddOne adds one unit of the product, creating the item if needed, and
// returns the affected item
func (c *Cart) AddOne(productID uuid.UUID) (*CartItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}

	if existing := c.FindItemByProduct(productID); existing != nil {
		existing.Quantity++
		existing.UpdatedAt = time.Now()
		c.UpdatedAt = time.Now()
		return existing, nil
	}

	now := time.Now()
	c.Items = append(c.Items, CartItem{
		ID:        uuid.New(),
		CartID:    c.ID,
		ProductID: productID,
		Quantity:  1,
		CreatedAt: now,
		UpdatedAt: now,
	})
	c.UpdatedAt = now
	return &c.Items[len(c.Items)-1], nil
}

// DecrementOne removes one unit from the item. When the quantity reaches
// zero the item is removed. It returns the quantity of stock to restore
// (always the recorded amount being given up) and the remaining quantity.
func (c *Cart) DecrementOne(itemID uuid.UUID) (restore int64, remaining int64, err error) {
	item := c.FindItem(itemID)
	if item == nil {
		return 0, 0, shared.ErrNotFound
	}

	if item.Quantity > 1 {
		item.Quantity--
		item.UpdatedAt = time.Now()
		c.UpdatedAt = time.Now()
		return 1, item.Quantity, nil
	}

	restore = item.Quantity
	c.removeItem(itemID)
	return restore, 0, nil
}

// RemoveItem deletes the item and returns its recorded quantity so the
// caller can restore exactly that much stock
func (c *Cart) RemoveItem(itemID uuid.UUID) (int64, error) {
	item := c.FindItem(itemID)
	if item == nil {
		return 0, shared.ErrNotFound
	}
	qty := item.Quantity
	c.removeItem(itemID)
	return qty, nil
}

// Clear empties the cart, keeping the selected address, and returns the
// recorded quantity per product for stock restoration
func (c *Cart) Clear() map[uuid.UUID]int64 {
	restored := make(map[uuid.UUID]int64, len(c.Items))
	for _, item := range c.Items {
		restored[item.ProductID] += item.Quantity
	}
	c.Items = c.Items[:0]
	c.UpdatedAt = time.Now()
	return restored
}

// SelectAddress sets the delivery address reference
func (c *Cart) SelectAddress(addressID uuid.UUID) {
	c.SelectedAddressID = &addressID
	c.UpdatedAt = time.Now()
}

// IsEmpty reports whether the cart holds no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) removeItem(itemID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	c.UpdatedAt = time.Now()
}
