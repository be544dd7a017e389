// Package sequence defines the human-readable document numbering scheme:
// zero-padded, monotonically increasing numbers per document kind, such as
// BILL0004, PUR0012, and RET-003.
package sequence

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// Kind identifies a numbered document series
type Kind string

const (
	KindBill           Kind = "BILL"
	KindPurchase       Kind = "PUR"
	KindPurchaseReturn Kind = "PR"
	KindSaleReturn     Kind = "RET"
	KindCustomer       Kind = "CUST"
	KindSupplier       Kind = "CGS"
)

// IsValid returns true if the kind is a known document series
func (k Kind) IsValid() bool {
	switch k {
	case KindBill, KindPurchase, KindPurchaseReturn, KindSaleReturn, KindCustomer, KindSupplier:
		return true
	}
	return false
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// prefix returns the literal document number prefix, including any separator
func (k Kind) prefix() string {
	switch k {
	case KindSaleReturn, KindCustomer:
		return string(k) + "-"
	default:
		return string(k)
	}
}

// width returns the zero-padded digit width for the series
func (k Kind) width() int {
	switch k {
	case KindBill, KindPurchase, KindPurchaseReturn:
		return 4
	default:
		return 3
	}
}

// Format renders the document number for the given sequence value,
// e.g. KindBill.Format(4) == "BILL0004".
func (k Kind) Format(n int64) string {
	return fmt.Sprintf("%s%0*d", k.prefix(), k.width(), n)
}

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// Parse extracts the numeric suffix from a document number of this series.
// Numbers wider than the configured padding are accepted; the series simply
// stops zero-padding once it outgrows the width.
func (k Kind) Parse(number string) (int64, error) {
	match := trailingDigits.FindString(number)
	if match == "" {
		return 0, shared.NewDomainError("VALIDATION_ERROR", "Document number has no numeric suffix: "+number)
	}
	n, err := strconv.ParseInt(match, 10, 64)
	if err != nil {
		return 0, shared.NewDomainError("VALIDATION_ERROR", "Document number suffix out of range: "+number)
	}
	return n, nil
}

// NextAfter returns the document number following the given one, or the
// first number of the series when last is empty.
func (k Kind) NextAfter(last string) (string, error) {
	if last == "" {
		return k.Format(1), nil
	}
	n, err := k.Parse(last)
	if err != nil {
		return "", err
	}
	return k.Format(n + 1), nil
}

// Sequencer allocates the next document number for a series.
//
// Implementations must be safe under concurrent callers: two simultaneous
// allocations for the same tenant and kind must never yield the same number.
// The persistence implementation backs this with a counter row mutated via an
// atomic upsert-increment.
type Sequencer interface {
	Next(ctx context.Context, tenantID uuid.UUID, kind Kind) (string, error)
	// Peek reports the number Next would allocate without consuming it.
	// Purely advisory: a concurrent allocation can take the number first.
	Peek(ctx context.Context, tenantID uuid.UUID, kind Kind) (string, error)
}
