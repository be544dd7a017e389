// Package billing implements GST sale billing: per-line tax computation with
// stepwise paise rounding, and the Bill aggregate whose totals are always a
// pure function of its line items.
package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbooks/backend/internal/domain/shared"
)

var (
	hundred    = decimal.NewFromInt(100)
	twoHundred = decimal.NewFromInt(200)
)

// Round2 rounds a monetary value to 2 decimal places, half up. Every
// intermediate value in a line computation is rounded with this before it
// feeds the next step, so that summing line totals reproduces document totals
// to the paise.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineTotals holds the monetary outcome of a single line computation
type LineTotals struct {
	Gross          decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableAmount  decimal.Decimal
	CGST           decimal.Decimal
	SGST           decimal.Decimal
	IGST           decimal.Decimal
	Total          decimal.Decimal
}

// ComputeLine computes the tax breakdown for one bill line. CGST and SGST
// each take half the nominal GST rate on the taxable amount. IGST is zero on
// the intra-state path but stays additive in the total so an inter-state
// computation can populate it later.
func ComputeLine(qty, rate, discountPercent, gstPercent decimal.Decimal) LineTotals {
	gross := Round2(rate.Mul(qty))
	discountAmount := Round2(rate.Mul(qty).Mul(discountPercent).Div(hundred))
	taxable := Round2(gross.Sub(discountAmount))

	halfGST := Round2(taxable.Mul(gstPercent).Div(twoHundred))
	igst := decimal.Zero

	total := Round2(taxable.Add(halfGST).Add(halfGST).Add(igst))

	return LineTotals{
		Gross:          gross,
		DiscountAmount: discountAmount,
		TaxableAmount:  taxable,
		CGST:           halfGST,
		SGST:           halfGST,
		IGST:           igst,
		Total:          total,
	}
}

// LineItem is an immutable snapshot of a product at the time of sale. Later
// edits to the product do not change historical lines.
type LineItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BillID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	SNo       int       ``
	ItemCode  string    `gorm:"size:50;not null"`
	ItemName  string    `gorm:"size:200;not null"`
	Company   string    `gorm:"size:200"`
	HSNCode   string    `gorm:"size:20"`
	Packing   string    `gorm:"size:50"`
	Batch     string    `gorm:"size:50"`

	Qty     decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	FreeQty decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	MRP     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Rate    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TaxableAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GSTPercent      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CGST            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SGST            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IGST            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (LineItem) TableName() string {
	return "bill_line_items"
}

// NewLineItem snapshots a product into a computed bill line
func NewLineItem(productID uuid.UUID, itemCode, itemName string, qty, rate, discountPercent, gstPercent decimal.Decimal) (*LineItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if qty.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Rate cannot be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(hundred) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Discount percent must be between 0 and 100")
	}
	if gstPercent.IsNegative() || gstPercent.GreaterThan(hundred) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "GST percent must be between 0 and 100")
	}

	totals := ComputeLine(qty, rate, discountPercent, gstPercent)

	return &LineItem{
		ID:              uuid.New(),
		ProductID:       productID,
		ItemCode:        itemCode,
		ItemName:        itemName,
		Qty:             qty,
		FreeQty:         decimal.Zero,
		Rate:            rate,
		DiscountPercent: discountPercent,
		DiscountAmount:  totals.DiscountAmount,
		TaxableAmount:   totals.TaxableAmount,
		GSTPercent:      gstPercent,
		CGST:            totals.CGST,
		SGST:            totals.SGST,
		IGST:            totals.IGST,
		Total:           totals.Total,
		CreatedAt:       time.Now(),
	}, nil
}

// SetProductDetails attaches descriptive snapshot fields
func (l *LineItem) SetProductDetails(company, hsnCode, packing, batch string, mrp decimal.Decimal) {
	l.Company = company
	l.HSNCode = hsnCode
	l.Packing = packing
	l.Batch = batch
	l.MRP = mrp
}

// GrossAmount returns the pre-discount line amount
func (l *LineItem) GrossAmount() decimal.Decimal {
	return Round2(l.Rate.Mul(l.Qty))
}
