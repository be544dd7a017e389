package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// PurchaseReturnItem is one returned line on a purchase return
type PurchaseReturnItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseReturnID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null"`
	Qty              int64           `gorm:"not null"`
	Rate             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt        time.Time
}

// TableName returns the table name for GORM
func (PurchaseReturnItem) TableName() string {
	return "purchase_return_items"
}

// NewPurchaseReturnItem creates a purchase return line
func NewPurchaseReturnItem(productID uuid.UUID, qty int64, rate decimal.Decimal) (*PurchaseReturnItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if qty <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Rate cannot be negative")
	}

	return &PurchaseReturnItem{
		ID:        uuid.New(),
		ProductID: productID,
		Qty:       qty,
		Rate:      rate,
		Amount:    rate.Mul(decimal.NewFromInt(qty)),
		CreatedAt: time.Now(),
	}, nil
}

// PurchaseReturn reverses part of a prior purchase (PR0001). Creating it
// decrements product stock by the returned quantities; deleting it restores
// them.
type PurchaseReturn struct {
	shared.TenantAggregateRoot
	ReturnID     string               `gorm:"size:20;not null;uniqueIndex:idx_purchase_returns_tenant_no,priority:2"`
	SupplierID   uuid.UUID            `gorm:"type:uuid;not null;index"`
	SupplierName string               `gorm:"size:200;not null"`
	Date         time.Time            `gorm:"not null;index"`
	Items        []PurchaseReturnItem `gorm:"foreignKey:PurchaseReturnID;references:ID"`
	TotalAmount  decimal.Decimal      `gorm:"type:decimal(14,2);not null;default:0"`
	Reason       string               `gorm:"size:500"`
}

// TableName returns the table name for GORM
func (PurchaseReturn) TableName() string {
	return "purchase_returns"
}

// NewPurchaseReturn creates a purchase return with its lines
func NewPurchaseReturn(tenantID uuid.UUID, returnID string, supplierID uuid.UUID, supplierName string, date time.Time, items []PurchaseReturnItem) (*PurchaseReturn, error) {
	if returnID == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Return ID cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Supplier is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Return must have at least one item")
	}
	if date.IsZero() {
		date = time.Now()
	}

	r := &PurchaseReturn{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ReturnID:            returnID,
		SupplierID:          supplierID,
		SupplierName:        supplierName,
		Date:                date,
	}

	total := decimal.Zero
	for i := range items {
		items[i].PurchaseReturnID = r.ID
		total = total.Add(items[i].Amount)
	}
	r.Items = items
	r.TotalAmount = total

	return r, nil
}

// SetReason records why the goods were returned
func (r *PurchaseReturn) SetReason(reason string) {
	r.Reason = reason
	r.UpdatedAt = time.Now()
}
