// Package sqlite implements the persistence interfaces on a single
// SQLite database. It uses modernc.org/sqlite (pure Go, no CGO) with
// WAL mode; fact embeddings are stored as little-endian float32 blobs
// and scanned in process for similarity search.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/safespace-sl/safespace/internal/memory"

	_ "modernc.org/sqlite" // SQLite driver registration
)

// Compile-time interface guards.
var (
	_ memory.HistoryStore = (*historyStore)(nil)
	_ memory.SummaryStore = (*summaryStore)(nil)
	_ memory.ProfileStore = (*profileStore)(nil)
	_ memory.FactStore    = (*factStore)(nil)
)

// Store owns the database handle and exposes the individual stores.
type Store struct {
	config    Config
	db        *sql.DB
	logger    *slog.Logger
	history   *historyStore
	summaries *summaryStore
	profiles  *profileStore
	facts     *factStore
}

type historyStore struct {
	db *sql.DB
}

type summaryStore struct {
	db *sql.DB
}

type profileStore struct {
	db *sql.DB
}

type factStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at cfg.Path, applies
// PRAGMAs and migrations, and returns the Store. Callers must Close it.
func Open(cfg Config, logger *slog.Logger) (*Store, error) {
	cfg.defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Path == "" {
		cfg.Path = defaultDBFile
	}
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("sqlite: create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", cfg.Path, err)
	}

	// SQLite handles one writer at a time; limit pool to 1 connection
	// so PRAGMAs apply consistently.
	db.SetMaxOpenConns(1)

	if cfg.walEnabled() {
		if _, err := db.ExecContext(context.TODO(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: enable WAL: %w", err)
		}
	}

	if _, err := db.ExecContext(context.TODO(), fmt.Sprintf("PRAGMA busy_timeout=%d", cfg.BusyTimeout)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: set busy_timeout: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{
		config:    cfg,
		db:        db,
		logger:    logger,
		history:   &historyStore{db: db},
		summaries: &summaryStore{db: db},
		profiles:  &profileStore{db: db},
		facts:     &factStore{db: db},
	}

	logger.Info("sqlite store opened",
		slog.String("path", cfg.Path),
		slog.Bool("wal", cfg.walEnabled()),
	)

	return s, nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.logger.Info("sqlite store closing")
	return s.db.Close()
}

// History returns the HistoryStore implementation.
func (s *Store) History() memory.HistoryStore { return s.history }

// Summaries returns the SummaryStore implementation.
func (s *Store) Summaries() memory.SummaryStore { return s.summaries }

// Profiles returns the ProfileStore implementation.
func (s *Store) Profiles() memory.ProfileStore { return s.profiles }

// Facts returns the FactStore implementation.
func (s *Store) Facts() memory.FactStore { return s.facts }

// UpsertProfile stores or replaces a user profile.
func (s *Store) UpsertProfile(ctx context.Context, profile memory.Profile) error {
	return s.profiles.Upsert(ctx, profile)
}
