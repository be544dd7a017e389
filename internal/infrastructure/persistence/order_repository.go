package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbooks/backend/internal/domain/ordering"
	"github.com/retailbooks/backend/internal/domain/shared"
)

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.preloaded(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.preloaded(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items").
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		})
}

func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	return r.findWhere(ctx, r.preloaded(ctx), filter)
}

func (r *GormOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	return r.findWhere(ctx, r.preloaded(ctx).Where("tenant_id = ?", tenantID), filter)
}

func (r *GormOrderRepository) findWhere(ctx context.Context, query *gorm.DB, filter shared.Filter) ([]ordering.Order, error) {
	if status, ok := filter.Filters["status"]; ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if state, ok := filter.Filters["payment_state"]; ok && state != "" {
		query = query.Where("payment_state = ?", state)
	}

	var orders []ordering.Order
	if err := query.Order("created_at DESC").
		Offset(pageOffset(filter)).Limit(pageLimit(filter)).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByUser returns the user's orders, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]ordering.Order, error) {
	var orders []ordering.Order
	if err := r.preloaded(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByGatewayOrderID resolves an order from its gateway reference
func (r *GormOrderRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.preloaded(ctx).
		Where("gateway_order_id = ?", gatewayOrderID).
		First(&order).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

// FindAutoProgressible returns orders whose status has not changed since the
// cutoff configured for that status. Cutoffs are Unix seconds.
func (r *GormOrderRepository) FindAutoProgressible(ctx context.Context, cutoffs map[ordering.OrderStatus]int64) ([]ordering.Order, error) {
	if len(cutoffs) == 0 {
		return nil, nil
	}

	cond := r.db.Session(&gorm.Session{NewDB: true})
	first := true
	for status, cutoff := range cutoffs {
		clause := r.db.Session(&gorm.Session{NewDB: true}).
			Where("status = ? AND status_changed_at <= ?", status, time.Unix(cutoff, 0))
		if first {
			cond = cond.Where(clause)
			first = false
		} else {
			cond = cond.Or(clause)
		}
	}

	var orders []ordering.Order
	if err := r.preloaded(ctx).
		Where(cond).
		Order("status_changed_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	return translateError(r.db.WithContext(ctx).Omit("Items", "Timeline").Save(order).Error)
}

// SaveWithChildren persists the order with its item and timeline rows. Items
// are written once at creation; timeline entries accumulate over time, so only
// missing ones are inserted.
func (r *GormOrderRepository) SaveWithChildren(ctx context.Context, order *ordering.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Timeline").Save(order).Error; err != nil {
			return err
		}
		if len(order.Items) > 0 {
			if err := tx.Clauses(onConflictDoNothing()).Create(&order.Items).Error; err != nil {
				return err
			}
		}
		if len(order.Timeline) > 0 {
			if err := tx.Clauses(onConflictDoNothing()).Create(&order.Timeline).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateError(err)
}

func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&ordering.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Where("order_id = ?", id).Delete(&ordering.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("order_id = ?", id).Delete(&ordering.TimelineEntry{}).Error
	})
}

func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&ordering.Order{})
	if status, ok := filter.Filters["status"]; ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
