package dto

import "net/http"

// Error codes shared between the domain layer and the HTTP surface.
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeAlreadyExists     = "ALREADY_EXISTS"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeInvalidState      = "INVALID_STATE"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeExternalService   = "EXTERNAL_SERVICE_ERROR"
	ErrCodeConcurrency       = "CONCURRENCY_CONFLICT"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

var errorCodeStatus = map[string]int{
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeAlreadyExists:     http.StatusConflict,
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeExternalService:   http.StatusBadGateway,
	ErrCodeConcurrency:       http.StatusConflict,
	ErrCodeInternal:          http.StatusInternalServerError,
}

// HTTPStatus maps a domain error code to an HTTP status. Unknown codes
// fall back to 500 so new domain errors never leak as 200s.
func HTTPStatus(code string) int {
	if status, ok := errorCodeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
