package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbooks/backend/internal/domain/shared"
)

// Query filters ledger listings
type Query struct {
	PartyType PartyType
	Search    string
	Type      EntryType
	FromDate  *time.Time
	ToDate    *time.Time
	Page      int
	PageSize  int
}

// Totals aggregates the filtered view plus the global net balance for the
// party type (sum over each party's latest balance)
type Totals struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	NetBalance  decimal.Decimal
}

// Repository stores ledger entries. Append-only: no update or delete.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	// LatestForParty returns the most recently inserted entry for the party,
	// ordered by insertion sequence, or shared.ErrNotFound when none exists.
	LatestForParty(ctx context.Context, tenantID uuid.UUID, partyCode string) (*Entry, error)
	FindForParty(ctx context.Context, tenantID uuid.UUID, partyCode string, filter shared.Filter) ([]Entry, error)
	Find(ctx context.Context, tenantID uuid.UUID, q Query) ([]Entry, int64, error)
	ComputeTotals(ctx context.Context, tenantID uuid.UUID, q Query) (*Totals, error)
}
