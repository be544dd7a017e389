// Package report defines read models for dashboard rollups. Everything here
// is derived data; the write path lives in the other domain packages.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesTotals is the bill rollup for a period
type SalesTotals struct {
	BillCount   int64           `json:"bill_count"`
	NetRevenue  decimal.Decimal `json:"net_revenue"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// PurchaseTotals is the purchase rollup for a period
type PurchaseTotals struct {
	PurchaseCount int64           `json:"purchase_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// DailySales is one day's billed revenue, for the dashboard chart
type DailySales struct {
	Date       time.Time       `json:"date"`
	BillCount  int64           `json:"bill_count"`
	NetRevenue decimal.Decimal `json:"net_revenue"`
}

// DashboardRepository reads aggregates straight off the operational tables.
// Draft bills are excluded from every rollup.
type DashboardRepository interface {
	SalesTotals(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*SalesTotals, error)
	PurchaseTotals(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*PurchaseTotals, error)
	DailySales(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]DailySales, error)
	CountProducts(ctx context.Context, tenantID uuid.UUID) (int64, error)
	CountLowStock(ctx context.Context, tenantID uuid.UUID, threshold int64) (int64, error)
	CountCustomers(ctx context.Context, tenantID uuid.UUID) (int64, error)
	CountOrdersByStatus(ctx context.Context, tenantID uuid.UUID) (map[string]int64, error)
}
