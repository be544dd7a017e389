// Package scheduler runs background sweeps over stale orders.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/retailbooks/backend/internal/domain/ordering"
	"github.com/retailbooks/backend/internal/infrastructure/config"
)

// OrderProgressor advances stale paid orders one fulfilment step. Implemented
// by the ordering application service.
type OrderProgressor interface {
	ProgressStale(ctx context.Context, delays map[ordering.OrderStatus]time.Duration) (int, error)
}

// OrderProgressScheduler periodically sweeps for orders that have sat in one
// fulfilment status past the configured delay and advances them
type OrderProgressScheduler struct {
	progressor OrderProgressor
	interval   time.Duration
	delays     map[ordering.OrderStatus]time.Duration
	logger     *zap.Logger

	mu        sync.Mutex
	isRunning bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewOrderProgressScheduler creates a scheduler from the sweep configuration
func NewOrderProgressScheduler(progressor OrderProgressor, cfg config.SchedulerConfig, logger *zap.Logger) *OrderProgressScheduler {
	delays := make(map[ordering.OrderStatus]time.Duration)
	for status, delay := range cfg.StatusDelays() {
		if delay > 0 {
			delays[ordering.OrderStatus(status)] = delay
		}
	}

	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &OrderProgressScheduler{
		progressor: progressor,
		interval:   interval,
		delays:     delays,
		logger:     logger,
	}
}

// Start launches the sweep loop. Idempotent: a running scheduler is left
// alone.
func (s *OrderProgressScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Order progress scheduler started",
		zap.Duration("sweep_interval", s.interval),
		zap.Int("tracked_statuses", len(s.delays)),
	)
}

// Stop cancels the loop and waits for an in-flight sweep to finish
func (s *OrderProgressScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.logger.Info("Order progress scheduler stopped")
}

func (s *OrderProgressScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *OrderProgressScheduler) sweep(ctx context.Context) {
	progressed, err := s.progressor.ProgressStale(ctx, s.delays)
	if err != nil {
		s.logger.Error("Order progress sweep failed", zap.Error(err))
		return
	}
	if progressed > 0 {
		s.logger.Info("Order progress sweep advanced orders", zap.Int("progressed", progressed))
	}
}

// RunOnce triggers a single sweep outside the ticker, for manual operation
func (s *OrderProgressScheduler) RunOnce(ctx context.Context) (int, error) {
	return s.progressor.ProgressStale(ctx, s.delays)
}
