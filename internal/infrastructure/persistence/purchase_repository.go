package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/trade"
)

// GormPurchaseRepository implements trade.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase with its items
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).Preload("Items").First(&purchase, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &purchase, nil
}

// FindByIDForTenant finds a purchase by ID scoped to a tenant
func (r *GormPurchaseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&purchase).Error; err != nil {
		return nil, translateError(err)
	}
	return &purchase, nil
}

// FindAll finds all purchases matching the filter
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Purchase, error) {
	return r.findWhere(r.db.WithContext(ctx).Model(&trade.Purchase{}), filter)
}

// FindAllForTenant finds all purchases for a tenant matching the filter
func (r *GormPurchaseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.Purchase, error) {
	query := r.db.WithContext(ctx).Model(&trade.Purchase{}).Where("tenant_id = ?", tenantID)
	return r.findWhere(query, filter)
}

func (r *GormPurchaseRepository) findWhere(query *gorm.DB, filter shared.Filter) ([]trade.Purchase, error) {
	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("purchase_id ILIKE ? OR supplier_name ILIKE ? OR bill_no ILIKE ?",
			keyword, keyword, keyword)
	}

	sortField := ValidateSortField(filter.OrderBy, PurchaseSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	offset := (filter.Page - 1) * filter.PageSize
	if offset < 0 {
		offset = 0
	}
	limit := filter.PageSize
	if limit <= 0 {
		limit = 20
	}

	var purchases []trade.Purchase
	if err := query.Preload("Items").Offset(offset).Limit(limit).Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindByPurchaseID finds a purchase by its document number
func (r *GormPurchaseRepository) FindByPurchaseID(ctx context.Context, tenantID uuid.UUID, purchaseID string) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("tenant_id = ? AND purchase_id = ?", tenantID, purchaseID).
		First(&purchase).Error; err != nil {
		return nil, translateError(err)
	}
	return &purchase, nil
}

// FindByDateRange lists purchases inside the date range
func (r *GormPurchaseRepository) FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("tenant_id = ? AND date >= ? AND date <= ?", tenantID, from, to).
		Order("date ASC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Save persists the purchase, replacing its items
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(purchase).Error; err != nil {
			return err
		}
		if err := tx.Where("purchase_id = ?", purchase.ID).Delete(&trade.PurchaseItem{}).Error; err != nil {
			return err
		}
		if len(purchase.Items) > 0 {
			if err := tx.Create(&purchase.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateError(err)
}

// Delete deletes a purchase row only
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.Purchase{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteWithItems removes the purchase and its items
func (r *GormPurchaseRepository) DeleteWithItems(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&trade.Purchase{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("purchase_id = ?", id).Delete(&trade.PurchaseItem{}).Error
	})
}

// Count counts purchases matching the filter
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&trade.Purchase{})
	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("purchase_id ILIKE ? OR supplier_name ILIKE ?", keyword, keyword)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
