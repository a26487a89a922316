package provider

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// nopHandler is a slog.Handler that discards all log records.
// Enabled returns false so slog skips formatting entirely (zero cost).
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (nopHandler) Handle(context.Context, slog.Record) error { return nil }

func (nopHandler) WithAttrs([]slog.Attr) slog.Handler { return nopHandler{} }

func (nopHandler) WithGroup(string) slog.Handler { return nopHandler{} }

// defaultAttemptTimeout bounds a single provider attempt when no timeout
// is configured. A hung provider must not stall the whole cascade.
const defaultAttemptTimeout = 30 * time.Second

// Entry configures a single provider in the cascade. Order in the slice
// is priority order.
type Entry struct {
	Provider Provider

	// Timeout bounds one Generate attempt. Zero means
	// defaultAttemptTimeout.
	Timeout time.Duration
}

// CascadeOption configures optional Cascade behavior.
type CascadeOption func(*Cascade)

// WithLogger injects a structured logger into the Cascade.
// When nil or omitted, all log output is silently discarded.
func WithLogger(l *slog.Logger) CascadeOption {
	return func(c *Cascade) { c.logger = l }
}

// Cascade tries providers strictly in configured order until one
// succeeds. A provider failure of any kind (missing credentials, HTTP
// error, timeout, malformed body) moves on to the next entry; the
// cascade itself never returns a Go error and never panics. When every
// provider fails, the Result carries ErrAllProviders so the caller can
// fall back to a deterministic generator.
type Cascade struct {
	entries []Entry
	logger  *slog.Logger
}

// NewCascade creates a cascade over the given entries. An empty cascade
// is valid: every Generate call reports failure, which callers already
// handle via their fallback path.
func NewCascade(entries []Entry, opts ...CascadeOption) *Cascade {
	c := &Cascade{entries: entries}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(nopHandler{})
	}
	return c
}

// Names returns the provider names in priority order.
func (c *Cascade) Names() []string {
	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		names = append(names, e.Provider.Name())
	}
	return names
}

// Generate tries each provider in order and returns the first success.
// Attempts are sequential, not raced: a later provider is only tried
// after an earlier one has definitively failed, so the configured
// priority order is authoritative.
func (c *Cascade) Generate(ctx context.Context, req Request) Result {
	var lastErr error

	for _, e := range c.entries {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}

		name := e.Provider.Name()
		c.logger.Debug("trying provider", "provider", name)

		text, err := c.attempt(ctx, e, req)
		if err == nil {
			c.logger.Info("provider succeeded", "provider", name)
			return Result{Success: true, Response: text, Provider: name}
		}

		lastErr = err
		c.logger.Warn("provider failed, trying next",
			"provider", name,
			"error", err,
		)
	}

	if lastErr != nil {
		c.logger.Error("all providers exhausted", "last_error", lastErr)
		return Result{Err: fmt.Errorf("%w: last error: %w", ErrAllProviders, lastErr)}
	}
	return Result{Err: ErrAllProviders}
}

// attempt runs a single provider call under its configured timeout.
// A panicking provider is converted into a failure so one misbehaving
// implementation cannot take down the response path.
func (c *Cascade) attempt(ctx context.Context, e Entry, req Request) (text string, err error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = defaultAttemptTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider %s panicked: %v", e.Provider.Name(), r)
		}
	}()

	return e.Provider.Generate(ctx, req)
}
