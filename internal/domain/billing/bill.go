package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// PaymentStatus is the derived payment state of a bill
type PaymentStatus string

const (
	PaymentStatusDraft   PaymentStatus = "Draft"
	PaymentStatusUnpaid  PaymentStatus = "Unpaid"
	PaymentStatusPartial PaymentStatus = "Partial"
	PaymentStatusPaid    PaymentStatus = "Paid"
)

// IsValid returns true if the status is known
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusDraft, PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// DerivePaymentStatus resolves the payment status for a bill. An explicit
// Draft request wins unconditionally; otherwise the status is a pure function
// of balance and paid amount. There is no terminal state: a Paid bill whose
// paid amount is later edited down legitimately shows Partial again.
func DerivePaymentStatus(balanceAmount, paidAmount decimal.Decimal, explicit PaymentStatus) PaymentStatus {
	if explicit == PaymentStatusDraft {
		return PaymentStatusDraft
	}
	if balanceAmount.IsZero() {
		return PaymentStatusPaid
	}
	if paidAmount.IsPositive() {
		return PaymentStatusPartial
	}
	return PaymentStatusUnpaid
}

// Bill is a sale document. Its aggregate totals are always recomputed from
// the current line items; they are never patched from client-supplied values.
type Bill struct {
	shared.TenantAggregateRoot
	BillNo     string     `gorm:"size:20;not null;uniqueIndex:idx_bills_tenant_no,priority:2"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`
	BillDate   time.Time  `gorm:"not null;index"`
	Items      []LineItem `gorm:"foreignKey:BillID;references:ID"`

	TotalQty      decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	GrossAmount   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalDiscount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TaxableAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalCGST     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalSGST     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalIGST     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	RoundOff      decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`
	NetAmount     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`

	PaymentMode   string          `gorm:"size:30"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	BalanceAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PaymentStatus PaymentStatus   `gorm:"size:10;not null;default:Unpaid"`

	Notes string `gorm:"size:1000"`
}

// TableName returns the table name for GORM
func (Bill) TableName() string {
	return "bills"
}

// NewBill creates an empty bill; call ReplaceItems to attach lines and
// compute totals
func NewBill(tenantID uuid.UUID, billNo string, billDate time.Time) (*Bill, error) {
	if billNo == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Bill number cannot be empty")
	}
	if billDate.IsZero() {
		billDate = time.Now()
	}

	return &Bill{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BillNo:              billNo,
		BillDate:            billDate,
		Items:               make([]LineItem, 0),
		PaymentStatus:       PaymentStatusUnpaid,
	}, nil
}

// SetCustomer links the bill to a customer
func (b *Bill) SetCustomer(customerID uuid.UUID) {
	b.CustomerID = &customerID
	b.UpdatedAt = time.Now()
}

// SetPayment records payment mode and notes
func (b *Bill) SetPayment(mode, notes string) {
	b.PaymentMode = mode
	b.Notes = notes
	b.UpdatedAt = time.Now()
}

// ReplaceItems swaps in a full set of computed line items and recomputes
// every aggregate total from them. Each total is the running sum of the
// already-rounded line values, re-rounded at each step, so document totals
// match the sum of line totals to the paise.
func (b *Bill) ReplaceItems(items []LineItem, roundOff, paidAmount decimal.Decimal, explicitStatus PaymentStatus) error {
	if len(items) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Bill must have at least one item")
	}
	if paidAmount.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Paid amount cannot be negative")
	}
	if explicitStatus != "" && !explicitStatus.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid payment status")
	}

	totalQty := decimal.Zero
	gross := decimal.Zero
	discount := decimal.Zero
	taxable := decimal.Zero
	cgst := decimal.Zero
	sgst := decimal.Zero
	igst := decimal.Zero

	for i := range items {
		items[i].BillID = b.ID
		items[i].SNo = i + 1

		totalQty = totalQty.Add(items[i].Qty)
		gross = Round2(gross.Add(items[i].GrossAmount()))
		discount = Round2(discount.Add(items[i].DiscountAmount))
		taxable = Round2(taxable.Add(items[i].TaxableAmount))
		cgst = Round2(cgst.Add(items[i].CGST))
		sgst = Round2(sgst.Add(items[i].SGST))
		igst = Round2(igst.Add(items[i].IGST))
	}

	net := Round2(taxable.Add(cgst).Add(sgst).Add(igst).Add(roundOff))
	balance := Round2(net.Sub(paidAmount))

	b.Items = items
	b.TotalQty = totalQty
	b.GrossAmount = gross
	b.TotalDiscount = discount
	b.TaxableAmount = taxable
	b.TotalCGST = cgst
	b.TotalSGST = sgst
	b.TotalIGST = igst
	b.RoundOff = roundOff
	b.NetAmount = net
	b.PaidAmount = paidAmount
	b.BalanceAmount = balance
	b.PaymentStatus = DerivePaymentStatus(balance, paidAmount, explicitStatus)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// UpdatePaymentStatus force-sets the payment status without recomputation
func (b *Bill) UpdatePaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid payment status")
	}
	b.PaymentStatus = status
	b.UpdatedAt = time.Now()
	return nil
}

// IsDraft reports whether the bill was explicitly parked as a draft
func (b *Bill) IsDraft() bool {
	return b.PaymentStatus == PaymentStatusDraft
}
