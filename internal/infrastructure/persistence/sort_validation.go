package persistence

import (
	"strings"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is not whitelisted.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"item_code":  true,
	"name":       true,
	"mrp":        true,
	"stock":      true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"first_name": true,
	"phone":      true,
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
}

// BillSortFields contains allowed sort fields for bills
var BillSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"bill_no":    true,
	"bill_date":  true,
	"net_amount": true,
}

// PurchaseSortFields contains allowed sort fields for purchases
var PurchaseSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"purchase_id":  true,
	"date":         true,
	"total_amount": true,
}

// ReturnSortFields contains allowed sort fields for purchase and sale returns
var ReturnSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"return_id":  true,
	"date":       true,
}

func pageOffset(filter shared.Filter) int {
	offset := (filter.Page - 1) * filter.PageSize
	if offset < 0 {
		return 0
	}
	return offset
}

func pageLimit(filter shared.Filter) int {
	if filter.PageSize <= 0 {
		return 20
	}
	return filter.PageSize
}
