package dto

import (
	"github.com/retailbooks/backend/internal/domain/shared"
)

// Response is the envelope returned by every API endpoint.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

// ErrorInfo carries a machine-readable error code alongside the message.
type ErrorInfo struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Meta holds pagination metadata for list responses.
type Meta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// NewSuccessResponse wraps data in a success envelope.
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewSuccessResponseWithMeta wraps a list payload with pagination metadata.
func NewSuccessResponseWithMeta(data any, meta Meta) Response {
	return Response{Success: true, Data: data, Meta: &meta}
}

// NewErrorResponse builds an error envelope.
func NewErrorResponse(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error:   &ErrorInfo{Code: code, Message: message, RequestID: requestID},
	}
}

// ListRequest is the common query shape for list endpoints.
type ListRequest struct {
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"omitempty,max=200"`
	Status   string `form:"status" binding:"omitempty,max=30"`
	SortBy   string `form:"sort_by" binding:"omitempty,max=50"`
	SortDir  string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the request into a repository filter.
func (r ListRequest) ToFilter() shared.Filter {
	page := r.Page
	if page < 1 {
		page = 1
	}
	size := r.PageSize
	if size < 1 {
		size = 20
	}
	filter := shared.Filter{
		Page:     page,
		PageSize: size,
		Search:   r.Search,
		OrderBy:  r.SortBy,
		OrderDir: r.SortDir,
	}
	if r.Status != "" {
		filter.Filters = map[string]interface{}{"status": r.Status}
	}
	return filter
}
