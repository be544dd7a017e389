// Package ledger implements the append-only party ledger. Every entry carries
// a balance snapshot computed at insertion time from the party's previous
// entry; the current balance of a party is the balance of its most recently
// inserted entry.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// PartyType discriminates the two ledger counterparties
type PartyType string

const (
	PartyTypeCustomer PartyType = "customer"
	PartyTypeSupplier PartyType = "supplier"
)

// IsValid returns true if the party type is known
func (p PartyType) IsValid() bool {
	return p == PartyTypeCustomer || p == PartyTypeSupplier
}

// String returns the string representation of PartyType
func (p PartyType) String() string {
	return string(p)
}

// Delta returns the signed balance movement for a debit/credit pair.
// For a customer, debit (receivable) increases the balance and credit
// (receipt) decreases it. For a supplier, credit (payable) increases the
// balance and debit (payment) decreases it.
func (p PartyType) Delta(debit, credit decimal.Decimal) decimal.Decimal {
	if p == PartyTypeSupplier {
		return credit.Sub(debit)
	}
	return debit.Sub(credit)
}

// EntryType classifies what business event produced a ledger entry
type EntryType string

const (
	EntryTypeSale       EntryType = "Sale"
	EntryTypePayment    EntryType = "Payment"
	EntryTypePurchase   EntryType = "Purchase"
	EntryTypeReceipt    EntryType = "Receipt"
	EntryTypeSaleReturn EntryType = "Sale Return"
	EntryTypePurReturn  EntryType = "Purchase Return"
	EntryTypeOpening    EntryType = "Opening"
)

// Entry is an immutable ledger row. Entries are never edited or deleted in
// the normal flow; corrections are posted as new entries. Seq is a
// monotonically increasing insertion sequence: balance chaining orders by Seq,
// never by the business Date, so back-dated entries cannot chain off a stale
// "latest" row.
type Entry struct {
	shared.BaseEntity
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_tenant_party,priority:1"`
	Seq           int64           `gorm:"autoIncrement;uniqueIndex"`
	Date          time.Time       `gorm:"not null;index"`
	DueDate       *time.Time      ``
	PartyType     PartyType       `gorm:"size:10;not null;index"`
	PartyCode     string          `gorm:"size:20;not null;index:idx_ledger_tenant_party,priority:2"`
	PartyName     string          `gorm:"size:200;not null"`
	MobileNumber  string          `gorm:"size:20"`
	Type          EntryType       `gorm:"size:30;not null"`
	ReferenceNo   string          `gorm:"size:50;not null"`
	PaymentMethod string          `gorm:"size:30;not null;default:Credit"`
	Debit         decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Credit        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Balance       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "ledger_entries"
}

// NewEntry creates a ledger entry, computing its balance snapshot from the
// party's previous balance
func NewEntry(
	tenantID uuid.UUID,
	partyType PartyType,
	partyCode, partyName string,
	entryType EntryType,
	referenceNo string,
	debit, credit decimal.Decimal,
	date time.Time,
	previousBalance decimal.Decimal,
) (*Entry, error) {
	if !partyType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid party type")
	}
	if partyCode == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Party code cannot be empty")
	}
	if partyName == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Party name cannot be empty")
	}
	if entryType == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Entry type cannot be empty")
	}
	if referenceNo == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Reference number cannot be empty")
	}
	if debit.IsNegative() || credit.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Debit and credit cannot be negative")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &Entry{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      tenantID,
		Date:          date,
		PartyType:     partyType,
		PartyCode:     partyCode,
		PartyName:     partyName,
		Type:          entryType,
		ReferenceNo:   referenceNo,
		PaymentMethod: "Credit",
		Debit:         debit,
		Credit:        credit,
		Balance:       previousBalance.Add(partyType.Delta(debit, credit)),
	}, nil
}

// SetPaymentMethod overrides the default payment method label
func (e *Entry) SetPaymentMethod(method string) {
	if method != "" {
		e.PaymentMethod = method
	}
}

// SetMobileNumber attaches the party's contact number for display
func (e *Entry) SetMobileNumber(mobile string) {
	e.MobileNumber = mobile
}

// SetDueDate attaches an optional due date
func (e *Entry) SetDueDate(due *time.Time) {
	e.DueDate = due
}
