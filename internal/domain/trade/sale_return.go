package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// SaleReturnStatus tracks the review state of a sale return
type SaleReturnStatus string

const (
	SaleReturnStatusPending  SaleReturnStatus = "PENDING"
	SaleReturnStatusApproved SaleReturnStatus = "APPROVED"
	SaleReturnStatusRejected SaleReturnStatus = "REJECTED"
)

// IsValid returns true if the status is known
func (s SaleReturnStatus) IsValid() bool {
	switch s {
	case SaleReturnStatusPending, SaleReturnStatusApproved, SaleReturnStatusRejected:
		return true
	}
	return false
}

// SaleReturnItem is one returned line on a sale return
type SaleReturnItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleReturnID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null"`
	Qty          int64           `gorm:"not null"`
	Rate         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (SaleReturnItem) TableName() string {
	return "sale_return_items"
}

// NewSaleReturnItem creates a sale return line
func NewSaleReturnItem(productID uuid.UUID, qty int64, rate decimal.Decimal) (*SaleReturnItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if qty <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Rate cannot be negative")
	}

	return &SaleReturnItem{
		ID:        uuid.New(),
		ProductID: productID,
		Qty:       qty,
		Rate:      rate,
		Amount:    rate.Mul(decimal.NewFromInt(qty)),
		CreatedAt: time.Now(),
	}, nil
}

// SaleReturn records goods coming back against an original bill (RET-001).
// Creating it increments product stock; deleting it applies the inverse.
type SaleReturn struct {
	shared.TenantAggregateRoot
	ReturnID     string           `gorm:"size:20;not null;uniqueIndex:idx_sale_returns_tenant_no,priority:2"`
	BillID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	BillNo       string           `gorm:"size:20;not null"`
	CustomerID   *uuid.UUID       `gorm:"type:uuid;index"`
	CustomerName string           `gorm:"size:200"`
	Date         time.Time        `gorm:"not null;index"`
	Items        []SaleReturnItem `gorm:"foreignKey:SaleReturnID;references:ID"`
	TotalAmount  decimal.Decimal  `gorm:"type:decimal(14,2);not null;default:0"`
	Reason       string           `gorm:"size:500"`
	Status       SaleReturnStatus `gorm:"size:10;not null;default:PENDING"`
}

// TableName returns the table name for GORM
func (SaleReturn) TableName() string {
	return "sale_returns"
}

// NewSaleReturn creates a sale return referencing the original bill
func NewSaleReturn(tenantID uuid.UUID, returnID string, billID uuid.UUID, billNo string, date time.Time, items []SaleReturnItem) (*SaleReturn, error) {
	if returnID == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Return ID cannot be empty")
	}
	if billID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Bill reference is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Return must have at least one item")
	}
	if date.IsZero() {
		date = time.Now()
	}

	r := &SaleReturn{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ReturnID:            returnID,
		BillID:              billID,
		BillNo:              billNo,
		Date:                date,
		Status:              SaleReturnStatusPending,
	}

	total := decimal.Zero
	for i := range items {
		items[i].SaleReturnID = r.ID
		total = total.Add(items[i].Amount)
	}
	r.Items = items
	r.TotalAmount = total

	return r, nil
}

// SetCustomer links the return to the bill's customer
func (r *SaleReturn) SetCustomer(customerID uuid.UUID, customerName string) {
	r.CustomerID = &customerID
	r.CustomerName = customerName
	r.UpdatedAt = time.Now()
}

// SetReason records why the goods were returned
func (r *SaleReturn) SetReason(reason string) {
	r.Reason = reason
	r.UpdatedAt = time.Now()
}

// UpdateStatus moves the return through its review states
func (r *SaleReturn) UpdateStatus(status SaleReturnStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid sale return status")
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	return nil
}
