// Package retention runs the scheduled purge of old chat messages.
// Summaries are deliberately exempt: they are the long-term memory the
// purge is supposed to preserve.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/safespace-sl/safespace/internal/memory"
)

// Config holds the purge settings.
type Config struct {
	// Schedule is a standard 5-field cron expression.
	Schedule string

	// MaxAge is how long messages are kept.
	MaxAge time.Duration
}

// Purger deletes messages older than the retention window on a cron
// schedule.
type Purger struct {
	config  Config
	history memory.HistoryStore
	logger  *slog.Logger
	cron    *cron.Cron

	// runLock skips a tick when the previous purge is still running.
	runLock sync.Mutex
}

// New returns a Purger. Start begins the schedule; Run executes one
// purge immediately.
func New(cfg Config, history memory.HistoryStore, logger *slog.Logger) (*Purger, error) {
	if history == nil {
		return nil, fmt.Errorf("retention: history store is required")
	}
	if cfg.MaxAge <= 0 {
		return nil, fmt.Errorf("retention: max age must be positive, got %v", cfg.MaxAge)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Purger{
		config:  cfg,
		history: history,
		logger:  logger,
	}, nil
}

// Start schedules the purge. Returns an error for an invalid cron
// expression.
func (p *Purger) Start() error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	p.cron = cron.New(cron.WithParser(parser))

	_, err := p.cron.AddFunc(p.config.Schedule, func() {
		if !p.runLock.TryLock() {
			p.logger.Warn("retention: purge still running, skipping tick")
			return
		}
		defer p.runLock.Unlock()

		if err := p.Run(context.Background()); err != nil {
			p.logger.Error("retention: purge failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("retention: invalid schedule %q: %w", p.config.Schedule, err)
	}

	p.cron.Start()
	p.logger.Info("retention: scheduler started",
		"schedule", p.config.Schedule,
		"max_age", p.config.MaxAge)
	return nil
}

// Stop shuts the schedule down, waiting for an in-flight purge.
func (p *Purger) Stop(_ context.Context) error {
	if p.cron != nil {
		<-p.cron.Stop().Done()
		p.logger.Info("retention: scheduler stopped")
	}
	return nil
}

// Run executes one purge pass.
func (p *Purger) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-p.config.MaxAge)

	n, err := p.history.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("retention: purging messages: %w", err)
	}

	p.logger.Info("retention: purge completed",
		"removed", n,
		"cutoff", cutoff.Format(time.RFC3339))
	return nil
}
