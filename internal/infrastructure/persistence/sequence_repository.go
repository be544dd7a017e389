package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbooks/backend/internal/domain/sequence"
	"github.com/retailbooks/backend/internal/domain/shared"
)

// sequenceCounter is one per-tenant per-series counter row
type sequenceCounter struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind      string    `gorm:"size:10;primaryKey"`
	Value     int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (sequenceCounter) TableName() string {
	return "document_sequences"
}

// GormSequencer implements sequence.Sequencer with a counter row mutated by
// an atomic upsert-increment. Concurrent callers serialize on the row lock,
// so two allocations for the same tenant and kind never collide.
type GormSequencer struct {
	db *gorm.DB
}

// NewGormSequencer creates a new GormSequencer
func NewGormSequencer(db *gorm.DB) *GormSequencer {
	return &GormSequencer{db: db}
}

// Next allocates the next document number for the series
func (s *GormSequencer) Next(ctx context.Context, tenantID uuid.UUID, kind sequence.Kind) (string, error) {
	if !kind.IsValid() {
		return "", shared.NewDomainError("VALIDATION_ERROR", "Unknown document series: "+kind.String())
	}

	var value int64
	err := s.db.WithContext(ctx).Raw(
		`INSERT INTO document_sequences (tenant_id, kind, value, updated_at)
		 VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		 ON CONFLICT (tenant_id, kind)
		 DO UPDATE SET value = document_sequences.value + 1, updated_at = CURRENT_TIMESTAMP
		 RETURNING value`,
		tenantID, kind.String(),
	).Scan(&value).Error
	if err != nil {
		return "", err
	}
	return kind.Format(value), nil
}

// Peek reads the counter without advancing it. A missing row means the
// series has never allocated, so the next number is the first.
func (s *GormSequencer) Peek(ctx context.Context, tenantID uuid.UUID, kind sequence.Kind) (string, error) {
	if !kind.IsValid() {
		return "", shared.NewDomainError("VALIDATION_ERROR", "Unknown document series: "+kind.String())
	}

	var counter sequenceCounter
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND kind = ?", tenantID, kind.String()).
		First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kind.Format(1), nil
		}
		return "", err
	}
	return kind.Format(counter.Value + 1), nil
}
