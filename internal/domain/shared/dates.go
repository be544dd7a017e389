package shared

import "time"

// ValidateDateRange checks a reporting date range: neither end may lie in
// the future and the end must not precede the start. A nil bound is open.
func ValidateDateRange(from, to *time.Time) error {
	now := time.Now()
	if from != nil && from.After(now) {
		return NewDomainError("VALIDATION_ERROR", "Start date cannot be in the future")
	}
	if to != nil && to.After(now) {
		return NewDomainError("VALIDATION_ERROR", "End date cannot be in the future")
	}
	if from != nil && to != nil && to.Before(*from) {
		return NewDomainError("VALIDATION_ERROR", "End date cannot be before start date")
	}
	return nil
}
