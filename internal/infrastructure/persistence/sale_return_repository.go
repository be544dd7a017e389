package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/domain/trade"
)

// GormSaleReturnRepository implements trade.SaleReturnRepository using GORM
type GormSaleReturnRepository struct {
	db *gorm.DB
}

// NewGormSaleReturnRepository creates a new GormSaleReturnRepository
func NewGormSaleReturnRepository(db *gorm.DB) *GormSaleReturnRepository {
	return &GormSaleReturnRepository{db: db}
}

func (r *GormSaleReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SaleReturn, error) {
	var ret trade.SaleReturn
	if err := r.db.WithContext(ctx).Preload("Items").First(&ret, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &ret, nil
}

func (r *GormSaleReturnRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.SaleReturn, error) {
	var ret trade.SaleReturn
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&ret).Error; err != nil {
		return nil, translateError(err)
	}
	return &ret, nil
}

func (r *GormSaleReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SaleReturn, error) {
	return r.findWhere(r.db.WithContext(ctx).Model(&trade.SaleReturn{}), filter)
}

func (r *GormSaleReturnRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.SaleReturn, error) {
	query := r.db.WithContext(ctx).Model(&trade.SaleReturn{}).Where("tenant_id = ?", tenantID)
	return r.findWhere(query, filter)
}

func (r *GormSaleReturnRepository) findWhere(query *gorm.DB, filter shared.Filter) ([]trade.SaleReturn, error) {
	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("return_id ILIKE ? OR bill_no ILIKE ? OR customer_name ILIKE ?",
			keyword, keyword, keyword)
	}
	if status, ok := filter.Filters["status"]; ok && status != "" {
		query = query.Where("status = ?", status)
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

	var returns []trade.SaleReturn
	if err := query.Preload("Items").Offset(offset).Limit(limit).Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

// FindByReturnID finds a sale return by its document number
func (r *GormSaleReturnRepository) FindByReturnID(ctx context.Context, tenantID uuid.UUID, returnID string) (*trade.SaleReturn, error) {
	var ret trade.SaleReturn
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("tenant_id = ? AND return_id = ?", tenantID, returnID).
		First(&ret).Error; err != nil {
		return nil, translateError(err)
	}
	return &ret, nil
}

// Save persists the sale return, replacing its items
func (r *GormSaleReturnRepository) Save(ctx context.Context, ret *trade.SaleReturn) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(ret).Error; err != nil {
			return err
		}
		if err := tx.Where("sale_return_id = ?", ret.ID).Delete(&trade.SaleReturnItem{}).Error; err != nil {
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

func (r *GormSaleReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.SaleReturn{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteWithItems removes the return and its items
func (r *GormSaleReturnRepository) DeleteWithItems(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&trade.SaleReturn{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("sale_return_id = ?", id).Delete(&trade.SaleReturnItem{}).Error
	})
}

func (r *GormSaleReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&trade.SaleReturn{})
	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("return_id ILIKE ? OR customer_name ILIKE ?", keyword, keyword)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
