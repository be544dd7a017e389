package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbooks/backend/internal/domain/trade"
)

// TradeItemRequest is one line of a purchase or return
type TradeItemRequest struct {
	ProductRef string          `json:"product_ref" binding:"required"`
	Qty        int64           `json:"qty" binding:"required,min=1"`
	Rate       decimal.Decimal `json:"rate" binding:"required"`
}

// CreatePurchaseRequest represents a request to record a purchase
type CreatePurchaseRequest struct {
	SupplierRef   string             `json:"supplier_ref" binding:"required"`
	BillNo        string             `json:"bill_no" binding:"max=50"`
	Date          *time.Time         `json:"date"`
	Items         []TradeItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string             `json:"payment_method" binding:"max=30"`
	Status        string             `json:"status" binding:"omitempty,oneof=PAID UNPAID"`
}

// CreatePurchaseReturnRequest represents a request to return goods to a supplier
type CreatePurchaseReturnRequest struct {
	SupplierRef string             `json:"supplier_ref" binding:"required"`
	Date        *time.Time         `json:"date"`
	Items       []TradeItemRequest `json:"items" binding:"required,min=1,dive"`
	Reason      string             `json:"reason" binding:"max=500"`
}

// CreateSaleReturnRequest represents a request to take goods back from a customer
type CreateSaleReturnRequest struct {
	BillRef string             `json:"bill_ref" binding:"required"`
	Date    *time.Time         `json:"date"`
	Items   []TradeItemRequest `json:"items" binding:"required,min=1,dive"`
	Reason  string             `json:"reason" binding:"max=500"`
}

// UpdateSaleReturnStatusRequest moves a sale return through review
type UpdateSaleReturnStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

// TradeItemResponse represents a purchase or return line in API responses
type TradeItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Qty       int64           `json:"qty"`
	Rate      decimal.Decimal `json:"rate"`
	Amount    decimal.Decimal `json:"amount"`
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	ID            uuid.UUID           `json:"id"`
	PurchaseID    string              `json:"purchase_id"`
	BillNo        string              `json:"bill_no"`
	SupplierID    uuid.UUID           `json:"supplier_id"`
	SupplierName  string              `json:"supplier_name"`
	Date          time.Time           `json:"date"`
	Items         []TradeItemResponse `json:"items"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaymentMethod string              `json:"payment_method"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
}

// PurchasePreviewResponse is the computed voucher before anything persists.
// NextPurchaseNo is advisory: the number is only reserved on Create.
type PurchasePreviewResponse struct {
	NextPurchaseNo string              `json:"next_purchase_no"`
	Items          []TradeItemResponse `json:"items"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
}

// PurchaseReturnResponse represents a purchase return in API responses
type PurchaseReturnResponse struct {
	ID           uuid.UUID           `json:"id"`
	ReturnID     string              `json:"return_id"`
	SupplierID   uuid.UUID           `json:"supplier_id"`
	SupplierName string              `json:"supplier_name"`
	Date         time.Time           `json:"date"`
	Items        []TradeItemResponse `json:"items"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Reason       string              `json:"reason,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// SaleReturnResponse represents a sale return in API responses
type SaleReturnResponse struct {
	ID           uuid.UUID           `json:"id"`
	ReturnID     string              `json:"return_id"`
	BillID       uuid.UUID           `json:"bill_id"`
	BillNo       string              `json:"bill_no"`
	CustomerID   *uuid.UUID          `json:"customer_id,omitempty"`
	CustomerName string              `json:"customer_name,omitempty"`
	Date         time.Time           `json:"date"`
	Items        []TradeItemResponse `json:"items"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Reason       string              `json:"reason,omitempty"`
	Status       string              `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
}

func toPurchaseResponse(p *trade.Purchase) *PurchaseResponse {
	resp := &PurchaseResponse{
		ID:            p.ID,
		PurchaseID:    p.PurchaseID,
		BillNo:        p.BillNo,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		Date:          p.Date,
		Items:         make([]TradeItemResponse, 0, len(p.Items)),
		TotalAmount:   p.TotalAmount,
		PaymentMethod: p.PaymentMethod,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
	}
	for i := range p.Items {
		it := &p.Items[i]
		resp.Items = append(resp.Items, TradeItemResponse{
			ID: it.ID, ProductID: it.ProductID, Qty: it.Qty, Rate: it.Rate, Amount: it.Amount,
		})
	}
	return resp
}

func toPurchaseReturnResponse(r *trade.PurchaseReturn) *PurchaseReturnResponse {
	resp := &PurchaseReturnResponse{
		ID:           r.ID,
		ReturnID:     r.ReturnID,
		SupplierID:   r.SupplierID,
		SupplierName: r.SupplierName,
		Date:         r.Date,
		Items:        make([]TradeItemResponse, 0, len(r.Items)),
		TotalAmount:  r.TotalAmount,
		Reason:       r.Reason,
		CreatedAt:    r.CreatedAt,
	}
	for i := range r.Items {
		it := &r.Items[i]
		resp.Items = append(resp.Items, TradeItemResponse{
			ID: it.ID, ProductID: it.ProductID, Qty: it.Qty, Rate: it.Rate, Amount: it.Amount,
		})
	}
	return resp
}

func toSaleReturnResponse(r *trade.SaleReturn) *SaleReturnResponse {
	resp := &SaleReturnResponse{
		ID:           r.ID,
		ReturnID:     r.ReturnID,
		BillID:       r.BillID,
		BillNo:       r.BillNo,
		CustomerID:   r.CustomerID,
		CustomerName: r.CustomerName,
		Date:         r.Date,
		Items:        make([]TradeItemResponse, 0, len(r.Items)),
		TotalAmount:  r.TotalAmount,
		Reason:       r.Reason,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
	}
	for i := range r.Items {
		it := &r.Items[i]
		resp.Items = append(resp.Items, TradeItemResponse{
			ID: it.ID, ProductID: it.ProductID, Qty: it.Qty, Rate: it.Rate, Amount: it.Amount,
		})
	}
	return resp
}
