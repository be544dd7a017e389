package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// Product represents a sellable item. Stock is authoritative here and is
// mutated only through ProductRepository stock operations; documents snapshot
// pricing fields at the time they are created and are not affected by later
// product edits.
type Product struct {
	shared.TenantAggregateRoot
	ItemCode        string          `gorm:"size:50;not null;uniqueIndex:idx_products_tenant_item_code,priority:2"`
	Name            string          `gorm:"size:200;not null"`
	BrandName       string          `gorm:"size:200"`
	HSNCode         string          `gorm:"size:20"`
	PackSize        string          `gorm:"size:50"`
	MRP             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	GSTPercent      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Stock           int64           `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, itemCode, name string, mrp decimal.Decimal) (*Product, error) {
	if itemCode == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product name cannot be empty")
	}
	if mrp.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "MRP cannot be negative")
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ItemCode:            itemCode,
		Name:                name,
		MRP:                 mrp,
		CostPrice:           decimal.Zero,
		GSTPercent:          decimal.Zero,
		DiscountPercent:     decimal.Zero,
		Stock:               0,
	}, nil
}

// SetPricing updates cost price, GST percent and the product-level default
// discount percent
func (p *Product) SetPricing(costPrice, gstPercent, discountPercent decimal.Decimal) error {
	if costPrice.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Cost price cannot be negative")
	}
	if gstPercent.IsNegative() || gstPercent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("VALIDATION_ERROR", "GST percent must be between 0 and 100")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("VALIDATION_ERROR", "Discount percent must be between 0 and 100")
	}

	p.CostPrice = costPrice
	p.GSTPercent = gstPercent
	p.DiscountPercent = discountPercent
	p.UpdatedAt = time.Now()
	return nil
}

// SetDetails updates descriptive fields
func (p *Product) SetDetails(brandName, hsnCode, packSize string) {
	p.BrandName = brandName
	p.HSNCode = hsnCode
	p.PackSize = packSize
	p.UpdatedAt = time.Now()
}

// UpdateMRP updates the maximum retail price
func (p *Product) UpdateMRP(mrp decimal.Decimal) error {
	if mrp.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "MRP cannot be negative")
	}
	p.MRP = mrp
	p.UpdatedAt = time.Now()
	return nil
}

// IsLowStock reports whether the product is at or below the alert threshold
func (p *Product) IsLowStock(threshold int64) bool {
	return p.Stock <= threshold
}
