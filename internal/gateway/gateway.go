// Package gateway provides the HTTP surface: the message endpoint,
// health, and Prometheus metrics.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/safespace-sl/safespace/internal/counselor"
)

// defaultMaxBodyBytes caps message request bodies. Chat messages are
// short; anything near this limit is abuse or a client bug.
const defaultMaxBodyBytes = 64 << 10

// Config holds the gateway settings.
type Config struct {
	// Listen is the bind address, e.g. ":8080".
	Listen string

	// MaxBodyBytes caps request bodies. Zero means the default.
	MaxBodyBytes int64

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func (c *Config) defaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = defaultMaxBodyBytes
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 60 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

// MessageProcessor handles one inbound chat message. Satisfied by
// *counselor.Counselor.
type MessageProcessor interface {
	ProcessMessage(ctx context.Context, message, userID string, reqCtx counselor.Context) (counselor.Reply, error)
}

// Gateway is the HTTP server for the counseling service.
type Gateway struct {
	config    Config
	processor MessageProcessor
	providers []string
	logger    *slog.Logger
	metrics   *Metrics
	server    *http.Server
	startedAt time.Time
}

// New returns a Gateway serving the given processor. The provider names
// appear in the health report in cascade priority order.
func New(cfg Config, processor MessageProcessor, providers []string, logger *slog.Logger) (*Gateway, error) {
	cfg.defaults()
	if processor == nil {
		return nil, errors.New("gateway: processor is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		config:    cfg,
		processor: processor,
		providers: providers,
		logger:    logger,
		metrics:   NewMetrics(),
	}, nil
}

// Start binds the listen address and serves in the background. It
// returns once the listener is accepting connections.
func (g *Gateway) Start() error {
	g.startedAt = time.Now()

	g.server = &http.Server{
		Addr:         g.config.Listen,
		Handler:      g.buildRouter(),
		ReadTimeout:  g.config.ReadTimeout,
		WriteTimeout: g.config.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", g.config.Listen)
	if err != nil {
		return errors.New("gateway: listen failed: " + err.Error())
	}

	go func() {
		g.logger.Info("gateway listening", "addr", g.config.Listen)
		if err := g.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("gateway serve error", "error", err)
		}
	}()

	return nil
}

// Stop drains in-flight requests within the configured timeout.
func (g *Gateway) Stop(ctx context.Context) error {
	if g.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, g.config.ShutdownTimeout)
	defer cancel()

	g.logger.Info("gateway shutting down")
	return g.server.Shutdown(shutdownCtx)
}
