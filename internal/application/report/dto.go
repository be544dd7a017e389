package report

import (
	"time"

	"github.com/retailbooks/backend/internal/domain/report"
)

// DashboardRequest bounds the rollup period; both bounds optional
type DashboardRequest struct {
	FromDate *time.Time `form:"from_date" time_format:"2006-01-02" binding:"omitempty,notfuture"`
	ToDate   *time.Time `form:"to_date" time_format:"2006-01-02" binding:"omitempty,notfuture"`
}

// DashboardSummaryResponse is the landing-page rollup
type DashboardSummaryResponse struct {
	PeriodStart    time.Time             `json:"period_start"`
	PeriodEnd      time.Time             `json:"period_end"`
	Sales          report.SalesTotals    `json:"sales"`
	Purchases      report.PurchaseTotals `json:"purchases"`
	DailySales     []report.DailySales   `json:"daily_sales"`
	ProductCount   int64                 `json:"product_count"`
	LowStockCount  int64                 `json:"low_stock_count"`
	CustomerCount  int64                 `json:"customer_count"`
	OrdersByStatus map[string]int64      `json:"orders_by_status"`
	ComputedAt     time.Time             `json:"computed_at"`
}
