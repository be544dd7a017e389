package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailbooks/backend/internal/application/catalog"
	"github.com/retailbooks/backend/internal/interfaces/http/dto"
)

// ProductHandler exposes the product catalog and stock alert endpoints.
type ProductHandler struct {
	BaseHandler
	products *catalog.ProductService
	alerts   *catalog.StockAlertService
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(products *catalog.ProductService, alerts *catalog.StockAlertService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		BaseHandler: NewBaseHandler(log),
		products:    products,
		alerts:      alerts,
	}
}

// RegisterRoutes registers product routes under the API group.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.Create)
		products.GET("", h.List)
		products.GET("/low-stock", h.ListLowStock)
		products.GET("/:ref", h.Get)
		products.PUT("/:ref", h.Update)
		products.DELETE("/:ref", h.Delete)
		products.POST("/:ref/stock", h.AdjustStock)
	}
	alerts := rg.Group("/stock-alert")
	{
		alerts.GET("", h.GetStockAlert)
		alerts.PUT("", h.UpdateStockAlert)
	}
}

// Create adds a product to the catalog.
func (h *ProductHandler) Create(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.products.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns products matching the filter.
func (h *ProductHandler) List(c *gin.Context) {
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
	resp, err := h.products.List(c.Request.Context(), tenantID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListLowStock returns products at or below the tenant's alert threshold.
func (h *ProductHandler) ListLowStock(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.products.ListLowStock(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get resolves a product by ID or item code.
func (h *ProductHandler) Get(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.products.GetByRef(c.Request.Context(), tenantID, c.Param("ref"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update modifies a product.
func (h *ProductHandler) Update(c *gin.Context) {
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
	var req catalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.products.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a product.
func (h *ProductHandler) Delete(c *gin.Context) {
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
	if err := h.products.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AdjustStock applies a signed stock delta with the non-negative guard.
func (h *ProductHandler) AdjustStock(c *gin.Context) {
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
	var req catalog.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.products.AdjustStock(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetStockAlert returns the tenant's low-stock threshold.
func (h *ProductHandler) GetStockAlert(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.alerts.Get(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStockAlert sets the tenant's low-stock threshold.
func (h *ProductHandler) UpdateStockAlert(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req catalog.UpdateStockAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.alerts.Update(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
