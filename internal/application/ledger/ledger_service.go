// Package ledger exposes application operations over the party ledger.
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared"
)

// Service records and queries ledger entries.
//
// Appends for the same party are serialized through a per-party lock so that
// concurrent postings always chain their balance off the true latest entry.
type Service struct {
	repo ledger.Repository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new ledger Service
func NewService(repo ledger.Repository) *Service {
	return &Service{
		repo:  repo,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *Service) partyLock(tenantID uuid.UUID, partyCode string) *sync.Mutex {
	key := tenantID.String() + "/" + partyCode
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// Record appends one entry for a party, chaining its running balance off
// the party's latest entry
func (s *Service) Record(ctx context.Context, tenantID uuid.UUID, req RecordEntryRequest) (*EntryResponse, error) {
	lock := s.partyLock(tenantID, req.PartyCode)
	lock.Lock()
	defer lock.Unlock()

	previous := decimal.Zero
	latest, err := s.repo.LatestForParty(ctx, tenantID, req.PartyCode)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if latest != nil {
		previous = latest.Balance
	}

	date := time.Time{}
	if req.Date != nil {
		date = *req.Date
	}
	entry, err := ledger.NewEntry(
		tenantID,
		ledger.PartyType(req.PartyType),
		req.PartyCode,
		req.PartyName,
		ledger.EntryType(req.Type),
		req.ReferenceNo,
		req.Debit,
		req.Credit,
		date,
		previous,
	)
	if err != nil {
		return nil, err
	}
	if req.PaymentMethod != "" {
		entry.SetPaymentMethod(req.PaymentMethod)
	}
	if req.MobileNumber != "" {
		entry.SetMobileNumber(req.MobileNumber)
	}
	entry.SetDueDate(req.DueDate)

	if err := s.repo.Append(ctx, entry); err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// List returns the filtered ledger view with its debit/credit totals and
// the net outstanding balance for the party type
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, req ListRequest) (*ListResponse, error) {
	if err := shared.ValidateDateRange(req.FromDate, req.ToDate); err != nil {
		return nil, err
	}

	q := ledger.Query{
		PartyType: ledger.PartyType(req.PartyType),
		Search:    req.Search,
		Type:      ledger.EntryType(req.Type),
		FromDate:  req.FromDate,
		ToDate:    req.ToDate,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}

	entries, total, err := s.repo.Find(ctx, tenantID, q)
	if err != nil {
		return nil, err
	}
	totals, err := s.repo.ComputeTotals(ctx, tenantID, q)
	if err != nil {
		return nil, err
	}

	resp := &ListResponse{
		Entries:     make([]EntryResponse, 0, len(entries)),
		Total:       total,
		Page:        q.Page,
		PageSize:    q.PageSize,
		TotalDebit:  totals.TotalDebit,
		TotalCredit: totals.TotalCredit,
		NetBalance:  totals.NetBalance,
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, *toEntryResponse(&entries[i]))
	}
	return resp, nil
}

// PartyStatement returns a single party's entries in insertion order
func (s *Service) PartyStatement(ctx context.Context, tenantID uuid.UUID, partyCode string, filter shared.Filter) ([]EntryResponse, error) {
	if partyCode == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Party code cannot be empty")
	}
	entries, err := s.repo.FindForParty(ctx, tenantID, partyCode, filter)
	if err != nil {
		return nil, err
	}
	out := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, *toEntryResponse(&entries[i]))
	}
	return out, nil
}

// Balance returns the party's current outstanding balance, zero when the
// party has no entries
func (s *Service) Balance(ctx context.Context, tenantID uuid.UUID, partyCode string) (decimal.Decimal, error) {
	latest, err := s.repo.LatestForParty(ctx, tenantID, partyCode)
	if err != nil {
		if err == shared.ErrNotFound {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return latest.Balance, nil
}
