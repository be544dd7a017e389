package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailbooks/backend/internal/application/partner"
	"github.com/retailbooks/backend/internal/interfaces/http/dto"
)

// CustomerHandler exposes customer master endpoints.
type CustomerHandler struct {
	BaseHandler
	customers *partner.CustomerService
}

// NewCustomerHandler creates a CustomerHandler.
func NewCustomerHandler(customers *partner.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{BaseHandler: NewBaseHandler(log), customers: customers}
}

// RegisterRoutes registers customer routes under the API group.
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:ref", h.Get)
		customers.PUT("/:ref", h.Update)
		customers.DELETE("/:ref", h.Delete)
	}
}

// Create registers a customer. Code is auto-assigned when omitted.
func (h *CustomerHandler) Create(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req partner.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.customers.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns customers matching the filter.
func (h *CustomerHandler) List(c *gin.Context) {
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
	resp, err := h.customers.List(c.Request.Context(), tenantID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get resolves a customer by ID, code, or phone.
func (h *CustomerHandler) Get(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.customers.GetByRef(c.Request.Context(), tenantID, c.Param("ref"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update modifies a customer.
func (h *CustomerHandler) Update(c *gin.Context) {
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
	var req partner.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.customers.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a customer.
func (h *CustomerHandler) Delete(c *gin.Context) {
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
	if err := h.customers.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
