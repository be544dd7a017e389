// Package report assembles the dashboard summary from the operational tables,
// with a short-lived cache in front so the landing page does not hammer the
// rollup queries.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/catalog"
	"github.com/retailbooks/backend/internal/domain/report"
	"github.com/retailbooks/backend/internal/domain/shared"
)

// SummaryCache stores computed dashboard summaries keyed by tenant and
// period. A miss returns shared.ErrNotFound; Set failures are non-fatal.
type SummaryCache interface {
	Get(ctx context.Context, key string) (*DashboardSummaryResponse, error)
	Set(ctx context.Context, key string, summary *DashboardSummaryResponse, ttl time.Duration) error
}

// DashboardService serves the read-only dashboard rollup
type DashboardService struct {
	dashboardRepo report.DashboardRepository
	alertRepo     catalog.StockAlertRepository
	cache         SummaryCache
	cacheTTL      time.Duration
}

// NewDashboardService creates a new DashboardService. cache may be nil, in
// which case every request recomputes.
func NewDashboardService(
	dashboardRepo report.DashboardRepository,
	alertRepo catalog.StockAlertRepository,
	cache SummaryCache,
	cacheTTL time.Duration,
) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 2 * time.Minute
	}
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		alertRepo:     alertRepo,
		cache:         cache,
		cacheTTL:      cacheTTL,
	}
}

func cacheKey(tenantID uuid.UUID, from, to time.Time) string {
	return "dashboard:" + tenantID.String() + ":" + from.Format("20060102") + ":" + to.Format("20060102")
}

func (s *DashboardService) threshold(ctx context.Context, tenantID uuid.UUID) int64 {
	settings, err := s.alertRepo.Get(ctx, tenantID)
	if err != nil {
		return catalog.DefaultStockAlertThreshold
	}
	return settings.Threshold
}

// Summary computes the dashboard rollup for the period. The period defaults
// to the current month when both bounds are nil.
func (s *DashboardService) Summary(ctx context.Context, tenantID uuid.UUID, req DashboardRequest) (*DashboardSummaryResponse, error) {
	if err := shared.ValidateDateRange(req.FromDate, req.ToDate); err != nil {
		return nil, err
	}
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now
	if req.FromDate != nil {
		from = *req.FromDate
	}
	if req.ToDate != nil {
		to = time.Date(req.ToDate.Year(), req.ToDate.Month(), req.ToDate.Day(), 23, 59, 59, 0, req.ToDate.Location())
	}

	key := cacheKey(tenantID, from, to)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			return cached, nil
		}
	}

	sales, err := s.dashboardRepo.SalesTotals(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	purchases, err := s.dashboardRepo.PurchaseTotals(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	daily, err := s.dashboardRepo.DailySales(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	productCount, err := s.dashboardRepo.CountProducts(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	lowStockCount, err := s.dashboardRepo.CountLowStock(ctx, tenantID, s.threshold(ctx, tenantID))
	if err != nil {
		return nil, err
	}
	customerCount, err := s.dashboardRepo.CountCustomers(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	ordersByStatus, err := s.dashboardRepo.CountOrdersByStatus(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummaryResponse{
		PeriodStart:    from,
		PeriodEnd:      to,
		Sales:          *sales,
		Purchases:      *purchases,
		DailySales:     daily,
		ProductCount:   productCount,
		LowStockCount:  lowStockCount,
		CustomerCount:  customerCount,
		OrdersByStatus: ordersByStatus,
		ComputedAt:     now,
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, summary, s.cacheTTL)
	}
	return summary, nil
}
