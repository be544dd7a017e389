// Package trade implements the purchase and return documents: supplier
// purchases, purchase returns, and sale returns. Documents carry simple
// qty*rate lines; stock and ledger effects are orchestrated by the
// application layer.
package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// PurchaseStatus is the settlement state of a purchase
type PurchaseStatus string

const (
	PurchaseStatusPaid   PurchaseStatus = "PAID"
	PurchaseStatusUnpaid PurchaseStatus = "UNPAID"
)

// PurchaseItem is one received line on a purchase document
type PurchaseItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	Qty        int64           `gorm:"not null"`
	Rate       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// NewPurchaseItem creates a purchase line; amount is always qty * rate
func NewPurchaseItem(productID uuid.UUID, qty int64, rate decimal.Decimal) (*PurchaseItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if qty <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Rate cannot be negative")
	}

	return &PurchaseItem{
		ID:        uuid.New(),
		ProductID: productID,
		Qty:       qty,
		Rate:      rate,
		Amount:    rate.Mul(decimal.NewFromInt(qty)),
		CreatedAt: time.Now(),
	}, nil
}

// Purchase is a supplier purchase document (PUR0001). Creating it increments
// product stock by each line quantity; deleting it applies the exact inverse.
type Purchase struct {
	shared.TenantAggregateRoot
	PurchaseID    string         `gorm:"size:20;not null;uniqueIndex:idx_purchases_tenant_no,priority:2"`
	BillNo        string         `gorm:"size:50;not null"`
	SupplierID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	SupplierName  string         `gorm:"size:200;not null"`
	Date          time.Time      `gorm:"not null;index"`
	Items         []PurchaseItem `gorm:"foreignKey:PurchaseID;references:ID"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PaymentMethod string         `gorm:"size:30;not null;default:Cash"`
	Status        PurchaseStatus `gorm:"size:10;not null;default:PAID"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a purchase document with its lines; the total is the
// sum of line amounts
func NewPurchase(tenantID uuid.UUID, purchaseID, billNo string, supplierID uuid.UUID, supplierName string, date time.Time, items []PurchaseItem) (*Purchase, error) {
	if purchaseID == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Purchase ID cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Supplier is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Purchase must have at least one item")
	}
	if date.IsZero() {
		date = time.Now()
	}
	if billNo == "" {
		billNo = purchaseID
	}

	p := &Purchase{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PurchaseID:          purchaseID,
		BillNo:              billNo,
		SupplierID:          supplierID,
		SupplierName:        supplierName,
		Date:                date,
		PaymentMethod:       "Cash",
		Status:              PurchaseStatusPaid,
	}

	total := decimal.Zero
	for i := range items {
		items[i].PurchaseID = p.ID
		total = total.Add(items[i].Amount)
	}
	p.Items = items
	p.TotalAmount = total

	return p, nil
}

// SetPayment overrides payment method and settlement status
func (p *Purchase) SetPayment(method string, status PurchaseStatus) {
	if method != "" {
		p.PaymentMethod = method
	}
	if status != "" {
		p.Status = status
	}
	p.UpdatedAt = time.Now()
}
