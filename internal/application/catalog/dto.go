package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbooks/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	ItemCode        string          `json:"item_code" binding:"required,min=1,max=50"`
	Name            string          `json:"name" binding:"required,min=1,max=200"`
	BrandName       string          `json:"brand_name" binding:"max=200"`
	HSNCode         string          `json:"hsn_code" binding:"max=20"`
	PackSize        string          `json:"pack_size" binding:"max=50"`
	MRP             decimal.Decimal `json:"mrp" binding:"required"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	GSTPercent      decimal.Decimal `json:"gst_percent"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	OpeningStock    int64           `json:"opening_stock" binding:"min=0"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=200"`
	BrandName       *string          `json:"brand_name" binding:"omitempty,max=200"`
	HSNCode         *string          `json:"hsn_code" binding:"omitempty,max=20"`
	PackSize        *string          `json:"pack_size" binding:"omitempty,max=50"`
	MRP             *decimal.Decimal `json:"mrp"`
	CostPrice       *decimal.Decimal `json:"cost_price"`
	GSTPercent      *decimal.Decimal `json:"gst_percent"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
}

// AdjustStockRequest applies a manual stock correction
type AdjustStockRequest struct {
	Delta int64 `json:"delta" binding:"required"`
}

// UpdateStockAlertRequest replaces the tenant's alert settings
type UpdateStockAlertRequest struct {
	Threshold  int64 `json:"threshold" binding:"required,min=1"`
	EmailAlert bool  `json:"email_alert"`
	PushAlert  bool  `json:"push_alert"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	ItemCode        string          `json:"item_code"`
	Name            string          `json:"name"`
	BrandName       string          `json:"brand_name,omitempty"`
	HSNCode         string          `json:"hsn_code,omitempty"`
	PackSize        string          `json:"pack_size,omitempty"`
	MRP             decimal.Decimal `json:"mrp"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	GSTPercent      decimal.Decimal `json:"gst_percent"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Stock           int64           `json:"stock"`
	LowStock        bool            `json:"low_stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// StockAlertResponse represents the alert settings in API responses
type StockAlertResponse struct {
	Threshold  int64 `json:"threshold"`
	EmailAlert bool  `json:"email_alert"`
	PushAlert  bool  `json:"push_alert"`
}

func toProductResponse(p *catalog.Product, threshold int64) *ProductResponse {
	return &ProductResponse{
		ID:              p.ID,
		ItemCode:        p.ItemCode,
		Name:            p.Name,
		BrandName:       p.BrandName,
		HSNCode:         p.HSNCode,
		PackSize:        p.PackSize,
		MRP:             p.MRP,
		CostPrice:       p.CostPrice,
		GSTPercent:      p.GSTPercent,
		DiscountPercent: p.DiscountPercent,
		Stock:           p.Stock,
		LowStock:        p.IsLowStock(threshold),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
