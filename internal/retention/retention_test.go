package retention

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/safespace-sl/safespace/internal/memory"
)

type purgeRecorder struct {
	mu      sync.Mutex
	cutoffs []time.Time
	removed int64
	err     error
}

func (r *purgeRecorder) Append(context.Context, memory.Message) error { return nil }

func (r *purgeRecorder) Recent(context.Context, string, int) ([]memory.Message, error) {
	return nil, nil
}

func (r *purgeRecorder) Count(context.Context, string) (int, error) { return 0, nil }

func (r *purgeRecorder) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cutoffs = append(r.cutoffs, cutoff)
	return r.removed, r.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{Schedule: "0 3 * * *", MaxAge: time.Hour}, nil, discard()); err == nil {
		t.Error("New() with nil store: error = nil, want error")
	}
	if _, err := New(Config{Schedule: "0 3 * * *"}, &purgeRecorder{}, discard()); err == nil {
		t.Error("New() with zero max age: error = nil, want error")
	}
}

func TestRun_PurgesWithCutoff(t *testing.T) {
	t.Parallel()

	rec := &purgeRecorder{removed: 7}
	p, err := New(Config{Schedule: "0 3 * * *", MaxAge: 30 * 24 * time.Hour}, rec, discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	before := time.Now().Add(-30 * 24 * time.Hour)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	after := time.Now().Add(-30 * 24 * time.Hour)

	if len(rec.cutoffs) != 1 {
		t.Fatalf("purge called %d times, want 1", len(rec.cutoffs))
	}
	cutoff := rec.cutoffs[0]
	if cutoff.Before(before) || cutoff.After(after) {
		t.Errorf("cutoff = %v, want within [%v, %v]", cutoff, before, after)
	}
}

func TestRun_PropagatesStoreError(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("disk full")
	rec := &purgeRecorder{err: storeErr}
	p, err := New(Config{Schedule: "0 3 * * *", MaxAge: time.Hour}, rec, discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := p.Run(context.Background()); !errors.Is(err, storeErr) {
		t.Errorf("Run() error = %v, want wrapped store error", err)
	}
}

func TestStart_InvalidSchedule(t *testing.T) {
	t.Parallel()

	p, err := New(Config{Schedule: "not cron", MaxAge: time.Hour}, &purgeRecorder{}, discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := p.Start(); err == nil {
		t.Error("Start() error = nil, want invalid schedule error")
	}
}

func TestStartStop(t *testing.T) {
	t.Parallel()

	p, err := New(Config{Schedule: "0 3 * * *", MaxAge: time.Hour}, &purgeRecorder{}, discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := p.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
