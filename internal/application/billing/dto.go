package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbooks/backend/internal/domain/billing"
)

// BillItemRequest is one line of an incoming bill. Rate, discount, and GST
// fall back to the product's stored values when omitted.
type BillItemRequest struct {
	ProductRef      string           `json:"product_ref" binding:"required"`
	Qty             decimal.Decimal  `json:"qty" binding:"required"`
	FreeQty         decimal.Decimal  `json:"free_qty"`
	Rate            *decimal.Decimal `json:"rate"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	GSTPercent      *decimal.Decimal `json:"gst_percent"`
	Batch           string           `json:"batch" binding:"max=50"`
}

// CreateBillRequest represents a request to create a bill
type CreateBillRequest struct {
	// CustomerRef resolves by id, code, or phone; empty means a walk-in sale
	// with no party ledger posting.
	CustomerRef   string            `json:"customer_ref"`
	CustomerPhone string            `json:"customer_phone" binding:"max=20"`
	CustomerName  string            `json:"customer_name" binding:"max=200"`
	BillDate      *time.Time        `json:"bill_date"`
	Items         []BillItemRequest `json:"items" binding:"required,min=1,dive"`
	RoundOff      decimal.Decimal   `json:"round_off"`
	PaidAmount    decimal.Decimal   `json:"paid_amount"`
	PaymentMode   string            `json:"payment_mode" binding:"max=30"`
	PaymentStatus string            `json:"payment_status" binding:"omitempty,oneof=Draft Unpaid Partial Paid"`
	Notes         string            `json:"notes" binding:"max=1000"`
}

// UpdateBillRequest replaces a bill's lines and payment details in full
type UpdateBillRequest struct {
	BillDate      *time.Time        `json:"bill_date"`
	Items         []BillItemRequest `json:"items" binding:"required,min=1,dive"`
	RoundOff      decimal.Decimal   `json:"round_off"`
	PaidAmount    decimal.Decimal   `json:"paid_amount"`
	PaymentMode   string            `json:"payment_mode" binding:"max=30"`
	PaymentStatus string            `json:"payment_status" binding:"omitempty,oneof=Draft Unpaid Partial Paid"`
	Notes         string            `json:"notes" binding:"max=1000"`
}

// DateRangeRequest bounds reporting queries
type DateRangeRequest struct {
	From *time.Time `form:"from" time_format:"2006-01-02" binding:"omitempty,notfuture"`
	To   *time.Time `form:"to" time_format:"2006-01-02" binding:"omitempty,notfuture"`
}

// BillItemResponse represents a bill line in API responses
type BillItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	SNo             int             `json:"s_no"`
	ItemCode        string          `json:"item_code"`
	ItemName        string          `json:"item_name"`
	Company         string          `json:"company,omitempty"`
	HSNCode         string          `json:"hsn_code,omitempty"`
	Packing         string          `json:"packing,omitempty"`
	Batch           string          `json:"batch,omitempty"`
	Qty             decimal.Decimal `json:"qty"`
	FreeQty         decimal.Decimal `json:"free_qty"`
	MRP             decimal.Decimal `json:"mrp"`
	Rate            decimal.Decimal `json:"rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxableAmount   decimal.Decimal `json:"taxable_amount"`
	GSTPercent      decimal.Decimal `json:"gst_percent"`
	CGST            decimal.Decimal `json:"cgst"`
	SGST            decimal.Decimal `json:"sgst"`
	IGST            decimal.Decimal `json:"igst"`
	Total           decimal.Decimal `json:"total"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID            uuid.UUID          `json:"id"`
	BillNo        string             `json:"bill_no"`
	CustomerID    *uuid.UUID         `json:"customer_id,omitempty"`
	BillDate      time.Time          `json:"bill_date"`
	Items         []BillItemResponse `json:"items"`
	TotalQty      decimal.Decimal    `json:"total_qty"`
	GrossAmount   decimal.Decimal    `json:"gross_amount"`
	TotalDiscount decimal.Decimal    `json:"total_discount"`
	TaxableAmount decimal.Decimal    `json:"taxable_amount"`
	TotalCGST     decimal.Decimal    `json:"total_cgst"`
	TotalSGST     decimal.Decimal    `json:"total_sgst"`
	TotalIGST     decimal.Decimal    `json:"total_igst"`
	RoundOff      decimal.Decimal    `json:"round_off"`
	NetAmount     decimal.Decimal    `json:"net_amount"`
	PaymentMode   string             `json:"payment_mode,omitempty"`
	PaidAmount    decimal.Decimal    `json:"paid_amount"`
	BalanceAmount decimal.Decimal    `json:"balance_amount"`
	PaymentStatus string             `json:"payment_status"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func toBillResponse(b *billing.Bill) *BillResponse {
	resp := &BillResponse{
		ID:            b.ID,
		BillNo:        b.BillNo,
		CustomerID:    b.CustomerID,
		BillDate:      b.BillDate,
		Items:         make([]BillItemResponse, 0, len(b.Items)),
		TotalQty:      b.TotalQty,
		GrossAmount:   b.GrossAmount,
		TotalDiscount: b.TotalDiscount,
		TaxableAmount: b.TaxableAmount,
		TotalCGST:     b.TotalCGST,
		TotalSGST:     b.TotalSGST,
		TotalIGST:     b.TotalIGST,
		RoundOff:      b.RoundOff,
		NetAmount:     b.NetAmount,
		PaymentMode:   b.PaymentMode,
		PaidAmount:    b.PaidAmount,
		BalanceAmount: b.BalanceAmount,
		PaymentStatus: string(b.PaymentStatus),
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	for i := range b.Items {
		it := &b.Items[i]
		resp.Items = append(resp.Items, BillItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			SNo:             it.SNo,
			ItemCode:        it.ItemCode,
			ItemName:        it.ItemName,
			Company:         it.Company,
			HSNCode:         it.HSNCode,
			Packing:         it.Packing,
			Batch:           it.Batch,
			Qty:             it.Qty,
			FreeQty:         it.FreeQty,
			MRP:             it.MRP,
			Rate:            it.Rate,
			DiscountPercent: it.DiscountPercent,
			DiscountAmount:  it.DiscountAmount,
			TaxableAmount:   it.TaxableAmount,
			GSTPercent:      it.GSTPercent,
			CGST:            it.CGST,
			SGST:            it.SGST,
			IGST:            it.IGST,
			Total:           it.Total,
		})
	}
	return resp
}
