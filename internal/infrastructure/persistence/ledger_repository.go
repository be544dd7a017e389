package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared"
)

// GormLedgerRepository implements ledger.Repository using GORM.
// The table is append-only; rows are never updated or deleted.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append inserts a new ledger entry
func (r *GormLedgerRepository) Append(ctx context.Context, entry *ledger.Entry) error {
	return translateError(r.db.WithContext(ctx).Create(entry).Error)
}

// LatestForParty returns the most recently inserted entry for the party.
// Ordered by insertion sequence, not business date: a backdated entry still
// chains off the last inserted balance.
func (r *GormLedgerRepository) LatestForParty(ctx context.Context, tenantID uuid.UUID, partyCode string) (*ledger.Entry, error) {
	var entry ledger.Entry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND party_code = ?", tenantID, partyCode).
		Order("seq DESC").
		First(&entry).Error; err != nil {
		return nil, translateError(err)
	}
	return &entry, nil
}

// FindForParty lists entries for one party in insertion order
func (r *GormLedgerRepository) FindForParty(ctx context.Context, tenantID uuid.UUID, partyCode string, filter shared.Filter) ([]ledger.Entry, error) {
	offset := (filter.Page - 1) * filter.PageSize
	if offset < 0 {
		offset = 0
	}
	limit := filter.PageSize
	if limit <= 0 {
		limit = 50
	}

	var entries []ledger.Entry
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND party_code = ?", tenantID, partyCode).
		Order("seq ASC").
		Offset(offset).Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormLedgerRepository) filteredQuery(ctx context.Context, tenantID uuid.UUID, q ledger.Query) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&ledger.Entry{}).
		Where("tenant_id = ? AND party_type = ?", tenantID, q.PartyType)

	if q.Search != "" {
		keyword := "%" + q.Search + "%"
		query = query.Where("party_name ILIKE ? OR party_code ILIKE ? OR mobile_number LIKE ?",
			keyword, keyword, keyword)
	}
	if q.Type != "" {
		query = query.Where("type = ?", q.Type)
	}
	if q.FromDate != nil {
		query = query.Where("date >= ?", *q.FromDate)
	}
	if q.ToDate != nil {
		query = query.Where("date <= ?", *q.ToDate)
	}
	return query
}

// Find lists entries matching the query, newest insertion first, with the
// total match count for pagination
func (r *GormLedgerRepository) Find(ctx context.Context, tenantID uuid.UUID, q ledger.Query) ([]ledger.Entry, int64, error) {
	var total int64
	if err := r.filteredQuery(ctx, tenantID, q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.PageSize
	if offset < 0 {
		offset = 0
	}
	limit := q.PageSize
	if limit <= 0 {
		limit = 50
	}

	var entries []ledger.Entry
	if err := r.filteredQuery(ctx, tenantID, q).
		Order("seq DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ComputeTotals sums debit and credit over the filtered view and computes the
// net balance across each party's latest entry for the party type
func (r *GormLedgerRepository) ComputeTotals(ctx context.Context, tenantID uuid.UUID, q ledger.Query) (*ledger.Totals, error) {
	var sums struct {
		TotalDebit  decimal.Decimal
		TotalCredit decimal.Decimal
	}
	if err := r.filteredQuery(ctx, tenantID, q).
		Select("COALESCE(SUM(debit), 0) AS total_debit, COALESCE(SUM(credit), 0) AS total_credit").
		Scan(&sums).Error; err != nil {
		return nil, err
	}

	// one row per party: the entry with the highest seq
	var net struct {
		NetBalance decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(e.balance), 0) AS net_balance
		     FROM ledger_entries e
		     JOIN (
		         SELECT party_code, MAX(seq) AS max_seq
		         FROM ledger_entries
		         WHERE tenant_id = ? AND party_type = ?
		         GROUP BY party_code
		     ) latest ON e.party_code = latest.party_code AND e.seq = latest.max_seq
		     WHERE e.tenant_id = ? AND e.party_type = ?`,
			tenantID, q.PartyType, tenantID, q.PartyType).
		Scan(&net).Error; err != nil {
		return nil, err
	}

	return &ledger.Totals{
		TotalDebit:  sums.TotalDebit,
		TotalCredit: sums.TotalCredit,
		NetBalance:  net.NetBalance,
	}, nil
}
