package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailbooks/backend/internal/application/ordering"
)

// CartHandler exposes the shopping cart endpoints. All operations act
// on the calling user's single active cart.
type CartHandler struct {
	BaseHandler
	carts *ordering.CartService
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(carts *ordering.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{BaseHandler: NewBaseHandler(log), carts: carts}
}

// RegisterRoutes registers cart routes under the API group.
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.POST("/items", h.AddItem)
		cart.POST("/items/:id/decrement", h.DecrementItem)
		cart.DELETE("/items/:id", h.RemoveItem)
		cart.DELETE("", h.Clear)
		cart.PUT("/address", h.SelectAddress)
	}
}

func (h *CartHandler) identity(c *gin.Context) (uuid.UUID, uuid.UUID, error) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	userID, err := h.getUserID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return tenantID, userID, nil
}

// Get returns the user's cart, creating an empty one if none exists.
func (h *CartHandler) Get(c *gin.Context) {
	tenantID, userID, err := h.identity(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.carts.Get(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem adds one unit of a product, merging with an existing line.
func (h *CartHandler) AddItem(c *gin.Context) {
	tenantID, userID, err := h.identity(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req ordering.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.carts.AddItem(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DecrementItem removes one unit of a line, dropping it at zero.
func (h *CartHandler) DecrementItem(c *gin.Context) {
	tenantID, userID, err := h.identity(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	itemID, err := h.parseUUIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.carts.DecrementItem(c.Request.Context(), tenantID, userID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem deletes a cart line regardless of quantity.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	tenantID, userID, err := h.identity(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	itemID, err := h.parseUUIDParam(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.carts.RemoveItem(c.Request.Context(), tenantID, userID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Clear empties the cart.
func (h *CartHandler) Clear(c *gin.Context) {
	tenantID, userID, err := h.identity(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.carts.Clear(c.Request.Context(), tenantID, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SelectAddress chooses the delivery address used at checkout.
func (h *CartHandler) SelectAddress(c *gin.Context) {
	tenantID, userID, err := h.identity(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req ordering.SelectAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.carts.SelectAddress(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
