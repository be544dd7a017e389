package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailbooks/backend/internal/application/trade"
	"github.com/retailbooks/backend/internal/interfaces/http/dto"
)

// PurchaseReturnHandler exposes purchase return endpoints.
type PurchaseReturnHandler struct {
	BaseHandler
	returns *trade.PurchaseReturnService
}

// NewPurchaseReturnHandler creates a PurchaseReturnHandler.
func NewPurchaseReturnHandler(returns *trade.PurchaseReturnService, log *zap.Logger) *PurchaseReturnHandler {
	return &PurchaseReturnHandler{BaseHandler: NewBaseHandler(log), returns: returns}
}

// RegisterRoutes registers purchase return routes under the API group.
func (h *PurchaseReturnHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/purchase-returns")
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:ref", h.Get)
		group.DELETE("/:ref", h.Delete)
	}
}

// Create records goods sent back to a supplier and deducts stock.
func (h *PurchaseReturnHandler) Create(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req trade.CreatePurchaseReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.returns.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns purchase returns matching the filter.
func (h *PurchaseReturnHandler) List(c *gin.Context) {
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
	resp, err := h.returns.List(c.Request.Context(), tenantID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get resolves a purchase return by ID or document number.
func (h *PurchaseReturnHandler) Get(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.returns.GetByRef(c.Request.Context(), tenantID, c.Param("ref"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a purchase return and restores its stock.
func (h *PurchaseReturnHandler) Delete(c *gin.Context) {
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
	if err := h.returns.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
