package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailbooks/backend/internal/application/trade"
	"github.com/retailbooks/backend/internal/interfaces/http/dto"
)

// PurchaseHandler exposes supplier purchase endpoints.
type PurchaseHandler struct {
	BaseHandler
	purchases *trade.PurchaseService
}

// NewPurchaseHandler creates a PurchaseHandler.
func NewPurchaseHandler(purchases *trade.PurchaseService, log *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{BaseHandler: NewBaseHandler(log), purchases: purchases}
}

// RegisterRoutes registers purchase routes under the API group.
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.Create)
		purchases.POST("/preview", h.Preview)
		purchases.GET("", h.List)
		purchases.GET("/range", h.ListByDateRange)
		purchases.GET("/:ref", h.Get)
		purchases.DELETE("/:ref", h.Delete)
	}
}

type previewPurchaseRequest struct {
	Items []trade.TradeItemRequest `json:"items" binding:"required,min=1,dive"`
}

type purchaseRangeRequest struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// Preview computes purchase totals without persisting anything.
func (h *PurchaseHandler) Preview(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req previewPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.purchases.Preview(c.Request.Context(), tenantID, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Create records a purchase: numbers it, adds stock, posts to the ledger.
func (h *PurchaseHandler) Create(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req trade.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.purchases.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns purchases matching the filter.
func (h *PurchaseHandler) List(c *gin.Context) {
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
	resp, err := h.purchases.List(c.Request.Context(), tenantID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByDateRange returns purchases within [from, to].
func (h *PurchaseHandler) ListByDateRange(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req purchaseRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.purchases.ListByDateRange(c.Request.Context(), tenantID, req.From, req.To)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get resolves a purchase by ID or document number.
func (h *PurchaseHandler) Get(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.purchases.GetByRef(c.Request.Context(), tenantID, c.Param("ref"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a purchase and reverses its stock additions.
func (h *PurchaseHandler) Delete(c *gin.Context) {
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
	if err := h.purchases.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
