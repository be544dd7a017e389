package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbooks/backend/internal/domain/billing"
	"github.com/retailbooks/backend/internal/domain/shared"
)

// GormBillRepository implements billing.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a bill with its line items
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var bill billing.Bill
	if err := r.db.WithContext(ctx).Preload("Items").First(&bill, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &bill, nil
}

// FindByIDForTenant finds a bill by ID scoped to a tenant
func (r *GormBillRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Bill, error) {
	var bill billing.Bill
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&bill).Error; err != nil {
		return nil, translateError(err)
	}
	return &bill, nil
}

// FindAll finds all bills matching the filter
func (r *GormBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Bill, error) {
	return r.findWhere(r.db.WithContext(ctx).Model(&billing.Bill{}), filter)
}

// FindAllForTenant finds all bills for a tenant matching the filter
func (r *GormBillRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	query := r.db.WithContext(ctx).Model(&billing.Bill{}).Where("tenant_id = ?", tenantID)
	return r.findWhere(query, filter)
}

func (r *GormBillRepository) findWhere(query *gorm.DB, filter shared.Filter) ([]billing.Bill, error) {
	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("bill_no ILIKE ?", keyword)
	}

	sortField := ValidateSortField(filter.OrderBy, BillSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	offset := (filter.Page - 1) * filter.PageSize
	if offset < 0 {
		offset = 0
	}
	limit := filter.PageSize
	if limit <= 0 {
		limit = 20
	}

	var bills []billing.Bill
	if err := query.Preload("Items").Offset(offset).Limit(limit).Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// FindByBillNo finds a bill by its document number
func (r *GormBillRepository) FindByBillNo(ctx context.Context, tenantID uuid.UUID, billNo string) (*billing.Bill, error) {
	var bill billing.Bill
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("tenant_id = ? AND bill_no = ?", tenantID, billNo).
		First(&bill).Error; err != nil {
		return nil, translateError(err)
	}
	return &bill, nil
}

// FindByCustomer lists a customer's bills, newest first
func (r *GormBillRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]billing.Bill, error) {
	var bills []billing.Bill
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Order("bill_date DESC, created_at DESC").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// FindByDateRange lists bills whose bill date falls inside the range
func (r *GormBillRepository) FindByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]billing.Bill, error) {
	var bills []billing.Bill
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("tenant_id = ? AND bill_date >= ? AND bill_date <= ?", tenantID, from, to).
		Order("bill_date ASC").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// FindByStatuses lists bills in any of the given payment statuses
func (r *GormBillRepository) FindByStatuses(ctx context.Context, tenantID uuid.UUID, statuses []billing.PaymentStatus) ([]billing.Bill, error) {
	var bills []billing.Bill
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("tenant_id = ? AND payment_status IN ?", tenantID, statuses).
		Order("bill_date DESC").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// Save persists the bill and its line items. Line items are replaced rather
// than merged, so removals on update do not leave orphan rows.
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(bill).Error; err != nil {
			return err
		}
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&billing.LineItem{}).Error; err != nil {
			return err
		}
		if len(bill.Items) > 0 {
			if err := tx.Create(&bill.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateError(err)
}

// Delete deletes a bill row only
func (r *GormBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&billing.Bill{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteWithItems removes the bill and its line items
func (r *GormBillRepository) DeleteWithItems(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&billing.Bill{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("bill_id = ?", id).Delete(&billing.LineItem{}).Error
	})
}

// Count counts bills matching the filter
func (r *GormBillRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&billing.Bill{})
	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("bill_no ILIKE ?", keyword)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
