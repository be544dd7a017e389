package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/trade"
)

// GormPurchaseReturnRepository implements trade.PurchaseReturnRepository using GORM
type GormPurchaseReturnRepository struct {
	db *gorm.DB
}

// NewGormPurchaseReturnRepository creates a new GormPurchaseReturnRepository
func NewGormPurchaseReturnRepository(db *gorm.DB) *GormPurchaseReturnRepository {
	return &GormPurchaseReturnRepository{db: db}
}

func (r *GormPurchaseReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseReturn, error) {
	var ret trade.PurchaseReturn
	if err := r.db.WithContext(ctx).Preload("Items").First(&ret, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &ret, nil
}

func (r *GormPurchaseReturnRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.PurchaseReturn, error) {
	var ret trade.PurchaseReturn
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&ret).Error; err != nil {
		return nil, translateError(err)
	}
	return &ret, nil
}

func (r *GormPurchaseReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.PurchaseReturn, error) {
	return r.findWhere(r.db.WithContext(ctx).Model(&trade.PurchaseReturn{}), filter)
}

func (r *GormPurchaseReturnRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.PurchaseReturn, error) {
	query := r.db.WithContext(ctx).Model(&trade.PurchaseReturn{}).Where("tenant_id = ?", tenantID)
	return r.findWhere(query, filter)
}

func (r *GormPurchaseReturnRepository) findWhere(query *gorm.DB, filter shared.Filter) ([]trade.PurchaseReturn, error) {
	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("return_id ILIKE ? OR supplier_name ILIKE ?", keyword, keyword)
	}

	sortField := ValidateSortField(filter.OrderBy, ReturnSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	offset := (filter.Page - 1) * filter.PageSize
	if offset < 0 {
		offset = 0
	}
	limit := filter.PageSize
	if limit <= 0 {
		limit = 20
	}

	var returns []trade.PurchaseReturn
	if err := query.Preload("Items").Offset(offset).Limit(limit).Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

// FindByReturnID finds a purchase return by its document number
func (r *GormPurchaseReturnRepository) FindByReturnID(ctx context.Context, tenantID uuid.UUID, returnID string) (*trade.PurchaseReturn, error) {
	var ret trade.PurchaseReturn
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("tenant_id = ? AND return_id = ?", tenantID, returnID).
		First(&ret).Error; err != nil {
		return nil, translateError(err)
	}
	return &ret, nil
}

// Save persists the purchase return, replacing its items
func (r *GormPurchaseReturnRepository) Save(ctx context.Context, ret *trade.PurchaseReturn) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(ret).Error; err != nil {
			return err
		}
		if err := tx.Where("purchase_return_id = ?", ret.ID).Delete(&trade.PurchaseReturnItem{}).Error; err != nil {
			return err
		}
		if len(ret.Items) > 0 {
			if err := tx.Create(&ret.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateError(err)
}

func (r *GormPurchaseReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.PurchaseReturn{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteWithItems removes the return and its items
func (r *GormPurchaseReturnRepository) DeleteWithItems(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&trade.PurchaseReturn{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("purchase_return_id = ?", id).Delete(&trade.PurchaseReturnItem{}).Error
	})
}

func (r *GormPurchaseReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&trade.PurchaseReturn{})
	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("return_id ILIKE ? OR supplier_name ILIKE ?", keyword, keyword)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
