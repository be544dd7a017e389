package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailbooks/backend/internal/application/ledger"
	"github.com/retailbooks/backend/internal/interfaces/http/dto"
)

// LedgerHandler exposes the party ledger endpoints.
type LedgerHandler struct {
	BaseHandler
	ledger *ledger.Service
}

// NewLedgerHandler creates a LedgerHandler.
func NewLedgerHandler(svc *ledger.Service, log *zap.Logger) *LedgerHandler {
	return &LedgerHandler{BaseHandler: NewBaseHandler(log), ledger: svc}
}

// RegisterRoutes registers ledger routes under the API group.
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/ledger")
	{
		group.POST("/entries", h.Record)
		group.GET("/entries", h.List)
		group.GET("/parties/:code/statement", h.PartyStatement)
		group.GET("/parties/:code/balance", h.Balance)
	}
}

// Record appends a manual ledger entry for a party.
func (h *LedgerHandler) Record(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req ledger.RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.ledger.Record(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns ledger entries with per-party latest balances and totals.
func (h *LedgerHandler) List(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req ledger.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.ledger.List(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PartyStatement returns a party's entries in running-balance order.
func (h *LedgerHandler) PartyStatement(c *gin.Context) {
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
	resp, err := h.ledger.PartyStatement(c.Request.Context(), tenantID, c.Param("code"), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Balance returns a party's current balance.
func (h *LedgerHandler) Balance(c *gin.Context) {
	tenantID, err := h.getTenantID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	balance, err := h.ledger.Balance(c.Request.Context(), tenantID, c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"party_code": c.Param("code"), "balance": balance})
}
