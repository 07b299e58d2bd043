package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bjorndarri/jasperreports/pkg/config"
	"github.com/bjorndarri/jasperreports/pkg/telemetry/metrics"
)

// Pruner enforces the retention policy on a store.
type Pruner struct {
	store   Store
	config  config.RetentionConfig
	metrics *metrics.Collector
	logger  *slog.Logger
	now     func() time.Time
}

// NewPruner creates a pruner. collector may be nil.
func NewPruner(store Store, cfg config.RetentionConfig, collector *metrics.Collector, logger *slog.Logger) *Pruner {
	if logger == nil {
		logger = slog.Default().With("component", "catalog.retention")
	}
	return &Pruner{
		store:   store,
		config:  cfg,
		metrics: collector,
		logger:  logger,
		now:     time.Now,
	}
}

// Prune deletes records older than the retention period, then the oldest
// records beyond MaxRecords. It returns the number of deleted records.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var cutoff time.Time
	if p.config.Days > 0 {
		cutoff = p.now().AddDate(0, 0, -p.config.Days)
	}
	if cutoff.IsZero() && p.config.MaxRecords <= 0 {
		return 0, nil
	}

	deleted, err := p.store.Prune(ctx, cutoff, p.config.MaxRecords)
	if err != nil {
		return 0, fmt.Errorf("prune catalog: %w", err)
	}
	p.metrics.RecordCatalogPrune(deleted)
	if n, err := p.store.Count(ctx, Filter{}); err == nil {
		p.metrics.SetCatalogRecords(n)
	}

	if deleted > 0 {
		p.logger.Info("catalog pruned",
			"deleted_count", deleted,
			"retention_days", p.config.Days,
			"max_records", p.config.MaxRecords,
		)
	}
	return deleted, nil
}

// Scheduler runs a Pruner on a cron schedule.
type Scheduler struct {
	pruner   *Pruner
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewScheduler creates a scheduler for the pruner's configured schedule.
func NewScheduler(pruner *Pruner) *Scheduler {
	return &Scheduler{
		pruner:   pruner,
		schedule: pruner.config.Schedule,
		cron:     cron.New(),
		logger:   pruner.logger,
	}
}

// Start schedules pruning. An empty schedule disables the scheduler. The
// scheduler stops when ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("prune schedule not configured, skipping scheduler")
		return nil
	}
	if s.running {
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}
	if _, err := s.cron.AddFunc(s.schedule, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule pruning: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("retention scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

func (s *Scheduler) run(ctx context.Context) {
	if _, err := s.pruner.Prune(ctx); err != nil {
		s.logger.Error("scheduled pruning failed", "error", err)
	}
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.logger.Info("retention scheduler stopped")
	}
}

// IsRunning reports whether the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled pruning time, or nil.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
