package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailbooks/backend/internal/application/trade"
	"github.com/retailbooks/backend/internal/interfaces/http/dto"
)

// SaleReturnHandler exposes sale return endpoints.
type SaleReturnHandler struct {
	BaseHandler
	returns *trade.SaleReturnService
}

// NewSaleReturnHandler creates a SaleReturnHandler.
func NewSaleReturnHandler(returns *trade.SaleReturnService, log *zap.Logger) *SaleReturnHandler {
	return &SaleReturnHandler{BaseHandler: NewBaseHandler(log), returns: returns}
}

// RegisterRoutes registers sale return routes under the API group.
func (h *SaleReturnHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/sale-returns")
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:ref", h.Get)
		group.PUT("/:ref/status", h.UpdateStatus)
		group.DELETE("/:ref", h.Delete)
	}
}

// Create records goods a customer brought back and restocks them.
func (h *SaleReturnHandler) Create(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req trade.CreateSaleReturnRequest
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

// List returns sale returns matching the filter.
func (h *SaleReturnHandler) List(c *gin.Context) {
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

// Get resolves a sale return by ID or document number.
func (h *SaleReturnHandler) Get(c *gin.Context) {
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

// UpdateStatus moves a sale return through its settlement states.
func (h *SaleReturnHandler) UpdateStatus(c *gin.Context) {
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
	var req trade.UpdateSaleReturnStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.returns.UpdateStatus(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a sale return and reverses its restock.
func (h *SaleReturnHandler) Delete(c *gin.Context) {
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
