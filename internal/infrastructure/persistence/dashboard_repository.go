package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbooks/backend/internal/domain/billing"
	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/ordering"
	"github.com/retailbooks/backend/internal/domain/partner"
	"github.com/retailbooks/backend/internal/domain/report"
	"github.com/retailbooks/backend/internal/domain/trade"
)

// GormDashboardRepository implements report.DashboardRepository by aggregating
// directly over the operational tables
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// SalesTotals sums finalized bills in the period. Drafts are excluded.
func (r *GormDashboardRepository) SalesTotals(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*report.SalesTotals, error) {
	var totals report.SalesTotals
	err := r.db.WithContext(ctx).Model(&billing.Bill{}).
		Select("COUNT(*) AS bill_count",
			"COALESCE(SUM(net_amount), 0) AS net_revenue",
			"COALESCE(SUM(paid_amount), 0) AS paid_amount",
			"COALESCE(SUM(balance_amount), 0) AS outstanding").
		Where("tenant_id = ? AND payment_status <> ? AND bill_date >= ? AND bill_date <= ?",
			tenantID, billing.PaymentStatusDraft, from, to).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// PurchaseTotals sums purchases in the period
func (r *GormDashboardRepository) PurchaseTotals(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*report.PurchaseTotals, error) {
	var totals report.PurchaseTotals
	err := r.db.WithContext(ctx).Model(&trade.Purchase{}).
		Select("COUNT(*) AS purchase_count", "COALESCE(SUM(total_amount), 0) AS total_amount").
		Where("tenant_id = ? AND date >= ? AND date <= ?", tenantID, from, to).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// DailySales groups finalized bills by calendar day for the chart
func (r *GormDashboardRepository) DailySales(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]report.DailySales, error) {
	var rows []report.DailySales
	err := r.db.WithContext(ctx).Model(&billing.Bill{}).
		Select("DATE(bill_date) AS date",
			"COUNT(*) AS bill_count",
			"COALESCE(SUM(net_amount), 0) AS net_revenue").
		Where("tenant_id = ? AND payment_status <> ? AND bill_date >= ? AND bill_date <= ?",
			tenantID, billing.PaymentStatusDraft, from, to).
		Group("DATE(bill_date)").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormDashboardRepository) CountProducts(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

func (r *GormDashboardRepository) CountLowStock(ctx context.Context, tenantID uuid.UUID, threshold int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("tenant_id = ? AND stock <= ?", tenantID, threshold).
		Count(&count).Error
	return count, err
}

func (r *GormDashboardRepository) CountCustomers(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&partner.Customer{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

// CountOrdersByStatus returns order counts keyed by status
func (r *GormDashboardRepository) CountOrdersByStatus(ctx context.Context, tenantID uuid.UUID) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.WithContext(ctx).Model(&ordering.Order{}).
		Select("status", "COUNT(*) AS total").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
