package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailbooks/backend/internal/application/ordering"
)

// OrderHandler exposes checkout and order lifecycle endpoints.
type OrderHandler struct {
	BaseHandler
	orders *ordering.OrderService
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(orders *ordering.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{BaseHandler: NewBaseHandler(log), orders: orders}
}

// RegisterRoutes registers order routes under the API group.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("/checkout", h.Checkout)
		orders.POST("/verify-payment", h.VerifyPayment)
		orders.GET("", h.ListByUser)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/cancel", h.Cancel)
		orders.PUT("/:id/status", h.UpdateStatus)
		orders.PUT("/:id/tracking", h.SetTracking)
	}
}

type cancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// Checkout converts the user's cart into an order. Razorpay orders are
// created at the gateway first so a gateway failure leaves nothing behind.
func (h *OrderHandler) Checkout(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	userID, err := h.getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req ordering.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.orders.Checkout(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// VerifyPayment confirms a Razorpay checkout callback signature and
// marks the order paid.
func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	var req ordering.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.orders.VerifyPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByUser returns the calling user's orders, newest first.
func (h *OrderHandler) ListByUser(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	userID, err := h.getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.orders.ListByUser(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns an order with its items and timeline.
func (h *OrderHandler) Get(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, err := h.parseUUIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.orders.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel cancels an order, refunding captured payments and restoring stock.
func (h *OrderHandler) Cancel(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, err := h.parseUUIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	// Body is optional; cancelling without a reason is fine.
	var req cancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}
	resp, err := h.orders.Cancel(c.Request.Context(), tenantID, id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus moves an order's fulfilment status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, err := h.parseUUIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req ordering.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.orders.UpdateStatus(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetTracking records shipment tracking details.
func (h *OrderHandler) SetTracking(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, err := h.parseUUIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req ordering.SetTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.orders.SetTracking(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
