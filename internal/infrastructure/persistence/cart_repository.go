package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbooks/backend/internal/domain/ordering"
	"github.com/retailbooks/backend/internal/domain/shared"
)

// GormCartRepository implements ordering.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Cart, error) {
	var cart ordering.Cart
	if err := r.db.WithContext(ctx).Preload("Items").First(&cart, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &cart, nil
}

func (r *GormCartRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ordering.Cart, error) {
	var cart ordering.Cart
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&cart).Error; err != nil {
		return nil, translateError(err)
	}
	return &cart, nil
}

func (r *GormCartRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Cart, error) {
	var carts []ordering.Cart
	if err := r.db.WithContext(ctx).Preload("Items").
		Offset(pageOffset(filter)).Limit(pageLimit(filter)).
		Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

func (r *GormCartRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ordering.Cart, error) {
	var carts []ordering.Cart
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("tenant_id = ?", tenantID).
		Offset(pageOffset(filter)).Limit(pageLimit(filter)).
		Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

// FindByUser returns the single cart belonging to a user
func (r *GormCartRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID) (*ordering.Cart, error) {
	var cart ordering.Cart
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		First(&cart).Error; err != nil {
		return nil, translateError(err)
	}
	return &cart, nil
}

func (r *GormCartRepository) Save(ctx context.Context, cart *ordering.Cart) error {
	return translateError(r.db.WithContext(ctx).Omit("Items").Save(cart).Error)
}

// SaveWithItems persists the cart and replaces its item rows
func (r *GormCartRepository) SaveWithItems(ctx context.Context, cart *ordering.Cart) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(cart).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&ordering.CartItem{}).Error; err != nil {
			return err
		}
		if len(cart.Items) > 0 {
			if err := tx.Create(&cart.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateError(err)
}

// DeleteItems removes the given item rows from a cart
func (r *GormCartRepository) DeleteItems(ctx context.Context, cartID uuid.UUID, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND id IN ?", cartID, itemIDs).
		Delete(&ordering.CartItem{}).Error
}

func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&ordering.Cart{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("cart_id = ?", id).Delete(&ordering.CartItem{}).Error
	})
}

func (r *GormCartRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ordering.Cart{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
