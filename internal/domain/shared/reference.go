package shared

import (
	"strings"

	"github.com/google/uuid"
)

// ParseOptionalID parses a reference that clients may send as a UUID string,
// an empty string, whitespace, or the literal strings "null"/"undefined".
// It returns nil for all absent forms and an error only for present but
// malformed values.
func ParseOptionalID(input string) (*uuid.UUID, error) {
	trimmed := strings.TrimSpace(input)
	switch strings.ToLower(trimmed) {
	case "", "null", "undefined":
		return nil, nil
	}

	id, err := uuid.Parse(trimmed)
	if err != nil {
		return nil, NewDomainError("VALIDATION_ERROR", "Invalid reference: "+trimmed)
	}
	return &id, nil
}

// OptionalString normalizes a client-supplied optional string, mapping the
// absent forms handled by ParseOptionalID to the empty string.
func OptionalString(input string) string {
	trimmed := strings.TrimSpace(input)
	switch strings.ToLower(trimmed) {
	case "null", "undefined":
		return ""
	}
	return trimmed
}
