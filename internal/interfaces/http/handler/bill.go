package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailbooks/backend/internal/application/billing"
	"github.com/retailbooks/backend/internal/interfaces/http/dto"
)

// BillHandler exposes GST sale bill endpoints.
type BillHandler struct {
	BaseHandler
	bills *billing.BillService
}

// NewBillHandler creates a BillHandler.
func NewBillHandler(bills *billing.BillService, log *zap.Logger) *BillHandler {
	return &BillHandler{BaseHandler: NewBaseHandler(log), bills: bills}
}

// RegisterRoutes registers bill routes under the API group.
func (h *BillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bills := rg.Group("/bills")
	{
		bills.POST("", h.Create)
		bills.GET("", h.List)
		bills.GET("/range", h.ListByDateRange)
		bills.GET("/outstanding", h.ListOutstanding)
		bills.GET("/customer/:id", h.ListByCustomer)
		bills.GET("/:ref", h.Get)
		bills.PUT("/:ref", h.Update)
		bills.DELETE("/:ref", h.Delete)
	}
}

// Create issues a bill: numbers it, consumes stock, posts to the ledger.
func (h *BillHandler) Create(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req billing.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.bills.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns bills matching the filter.
func (h *BillHandler) List(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.bills.List(c.Request.Context(), tenantID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByDateRange returns bills whose bill date falls inside [from, to].
func (h *BillHandler) ListByDateRange(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req billing.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.bills.ListByDateRange(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListOutstanding returns unpaid and partially paid bills.
func (h *BillHandler) ListOutstanding(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.bills.ListOutstanding(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByCustomer returns a customer's bills.
func (h *BillHandler) ListByCustomer(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	customerID, err := h.parseUUIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.bills.ListByCustomer(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get resolves a bill by ID or bill number.
func (h *BillHandler) Get(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.bills.GetByRef(c.Request.Context(), tenantID, c.Param("ref"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update replaces a bill's lines and reconciles stock deltas.
func (h *BillHandler) Update(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, err := h.parseUUIDParam(c, "ref")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req billing.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.bills.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a bill and restores its stock.
func (h *BillHandler) Delete(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, err := h.parseUUIDParam(c, "ref")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.bills.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
