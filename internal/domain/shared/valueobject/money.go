// Package valueobject holds immutable value types shared across domains.
package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code.
type Currency string

// INR is the Indian rupee, the only currency billed today.
const INR Currency = "INR"

// subunitsPerRupee converts rupees to paise.
var subunitsPerRupee = decimal.NewFromInt(100)

// Money is an amount of a single currency. The zero value is zero INR.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoneyINR wraps a rupee amount.
func NewMoneyINR(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: INR}
}

// Amount returns the amount in major units.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() Currency {
	if m.currency == "" {
		return INR
	}
	return m.currency
}

// Subunits returns the amount in the currency's smallest unit (paise),
// rounded to the nearest whole subunit. Payment gateways bill in subunits.
func (m Money) Subunits() int64 {
	return m.amount.Mul(subunitsPerRupee).Round(0).IntPart()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add returns the sum of two amounts. Mixing currencies is an error.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency() != other.Currency() {
		return Money{}, fmt.Errorf("cannot add %s to %s", other.Currency(), m.Currency())
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.Currency()}, nil
}

// String renders the amount with its currency code.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.Currency())
}
