package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailbooks/backend/internal/domain/shared"
	"github.com/retailbooks/backend/internal/infrastructure/logger"
	"github.com/retailbooks/backend/internal/interfaces/http/dto"
	"github.com/retailbooks/backend/internal/interfaces/http/middleware"
)

// Development fallback when no X-Tenant-ID header is supplied.
var defaultTenantID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// BaseHandler provides shared response and error helpers for handlers.
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a BaseHandler with the given logger.
func NewBaseHandler(log *zap.Logger) BaseHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return BaseHandler{logger: log}
}

// Success writes a 200 envelope.
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta writes a 200 envelope with pagination metadata.
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, meta dto.Meta) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, meta))
}

// Created writes a 201 envelope.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent writes a 204 with no body.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 validation error envelope.
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest,
		dto.NewErrorResponse(dto.ErrCodeValidation, message, middleware.GetRequestID(c)))
}

// HandleError maps an error to its HTTP status and writes the envelope.
// Domain errors carry their own code; anything else becomes a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.HTTPStatus(domainErr.Code)
		if status >= http.StatusInternalServerError {
			h.logger.Error("request failed",
				zap.String("request_id", requestID),
				zap.String("code", domainErr.Code),
				zap.Error(err))
		}
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message, requestID))
		return
	}

	h.logger.Error("unhandled error",
		zap.String("request_id", requestID),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "Internal server error", requestID))
}

// getTenantID resolves the tenant from the X-Tenant-ID header. Requests
// without the header fall back to the development tenant.
func (h *BaseHandler) getTenantID(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetHeader("X-Tenant-ID")
	if raw == "" {
		return defaultTenantID, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, shared.NewDomainError("VALIDATION_ERROR", "invalid X-Tenant-ID header")
	}
	return id, nil
}

// getUserID resolves the acting user from the X-User-ID header.
func (h *BaseHandler) getUserID(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		return uuid.Nil, shared.NewDomainError("VALIDATION_ERROR", "missing X-User-ID header")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, shared.NewDomainError("VALIDATION_ERROR", "invalid X-User-ID header")
	}
	return id, nil
}

// parseUUIDParam reads a path parameter as a UUID.
func (h *BaseHandler) parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, shared.NewDomainError("VALIDATION_ERROR", "invalid "+name+" parameter")
	}
	return id, nil
}

// requestLogger returns the request-scoped logger when the logging
// middleware set one, falling back to the handler's own.
func (h *BaseHandler) requestLogger(c *gin.Context) *zap.Logger {
	if _, exists := c.Get("logger"); exists {
		return logger.GetGinLogger(c)
	}
	return h.logger
}
