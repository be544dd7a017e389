package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailbooks/backend/internal/application/report"
)

// DashboardHandler exposes the landing-page rollup endpoint.
type DashboardHandler struct {
	BaseHandler
	dashboard *report.DashboardService
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(dashboard *report.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{BaseHandler: NewBaseHandler(log), dashboard: dashboard}
}

// RegisterRoutes registers dashboard routes under the API group.
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/summary", h.Summary)
}

// Summary returns sales, purchase, stock, and order rollups for the
// requested period, defaulting to the current month.
func (h *DashboardHandler) Summary(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req report.DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.dashboard.Summary(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
