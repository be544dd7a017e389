// Package catalog implements product and stock alert application services.
package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/shared"
)

// ProductService handles product management operations
type ProductService struct {
	productRepo catalog.ProductRepository
	alertRepo   catalog.StockAlertRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, alertRepo catalog.StockAlertRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		alertRepo:   alertRepo,
	}
}

func (s *ProductService) threshold(ctx context.Context, tenantID uuid.UUID) int64 {
	settings, err := s.alertRepo.Get(ctx, tenantID)
	if err != nil {
		return catalog.DefaultStockAlertThreshold
	}
	return settings.Threshold
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.productRepo.FindByItemCode(ctx, tenantID, req.ItemCode); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this item code already exists")
	} else if err != shared.ErrNotFound {
		return nil, err
	}

	product, err := catalog.NewProduct(tenantID, req.ItemCode, req.Name, req.MRP)
	if err != nil {
		return nil, err
	}
	if err := product.SetPricing(req.CostPrice, req.GSTPercent, req.DiscountPercent); err != nil {
		return nil, err
	}
	product.SetDetails(req.BrandName, req.HSNCode, req.PackSize)
	product.Stock = req.OpeningStock

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product, s.threshold(ctx, tenantID)), nil
}

// GetByRef resolves a product by id or item code
func (s *ProductService) GetByRef(ctx context.Context, tenantID uuid.UUID, ref string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByRef(ctx, tenantID, ref)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, s.threshold(ctx, tenantID)), nil
}

// List returns products for the tenant
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	threshold := s.threshold(ctx, tenantID)
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *toProductResponse(&products[i], threshold))
	}
	return out, nil
}

// Update applies partial changes to a product
func (s *ProductService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.BrandName != nil || req.HSNCode != nil || req.PackSize != nil {
		brand := product.BrandName
		hsn := product.HSNCode
		pack := product.PackSize
		if req.BrandName != nil {
			brand = *req.BrandName
		}
		if req.HSNCode != nil {
			hsn = *req.HSNCode
		}
		if req.PackSize != nil {
			pack = *req.PackSize
		}
		product.SetDetails(brand, hsn, pack)
	}
	if req.MRP != nil {
		if err := product.UpdateMRP(*req.MRP); err != nil {
			return nil, err
		}
	}
	if req.CostPrice != nil || req.GSTPercent != nil || req.DiscountPercent != nil {
		cost := product.CostPrice
		gst := product.GSTPercent
		discount := product.DiscountPercent
		if req.CostPrice != nil {
			cost = *req.CostPrice
		}
		if req.GSTPercent != nil {
			gst = *req.GSTPercent
		}
		if req.DiscountPercent != nil {
			discount = *req.DiscountPercent
		}
		if err := product.SetPricing(cost, gst, discount); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product, s.threshold(ctx, tenantID)), nil
}

// AdjustStock applies a manual correction through the guarded atomic update
func (s *ProductService) AdjustStock(ctx context.Context, tenantID, id uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	if err := s.productRepo.AdjustStock(ctx, tenantID, id, req.Delta); err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, s.threshold(ctx, tenantID)), nil
}

// ListLowStock returns products at or below the tenant's alert threshold
func (s *ProductService) ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]ProductResponse, error) {
	threshold := s.threshold(ctx, tenantID)
	products, err := s.productRepo.FindLowStock(ctx, tenantID, threshold)
	if err != nil {
		return nil, err
	}
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *toProductResponse(&products[i], threshold))
	}
	return out, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
