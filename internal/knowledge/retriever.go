// Package knowledge retrieves facts relevant to a user message by
// embedding the message and ranking the stored corpus by cosine
// similarity. Retrieval is best-effort: callers treat any error as
// "no facts" and continue.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/safespace-sl/safespace/internal/memory"
	"github.com/safespace-sl/safespace/internal/provider"
)

// DefaultLimit is how many facts a search returns unless the caller
// asks for a different k.
const DefaultLimit = 3

var (
	ErrNoEmbedder   = errors.New("no embedder configured")
	ErrEmptyQuery   = errors.New("empty query")
	ErrDimensions   = errors.New("embedding dimension mismatch")
	ErrZeroVector   = errors.New("zero-magnitude embedding")
	ErrEmptyContent = errors.New("empty fact content")
)

// Fact is one retrieval hit with its similarity score in [-1, 1].
type Fact struct {
	Content  string
	Score    float64
	Metadata map[string]string
}

// Retriever embeds queries and scans the fact store.
type Retriever struct {
	embedder provider.Embedder
	store    memory.FactStore
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithLogger sets the retriever's logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Retriever) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a Retriever over the given embedder and store.
func New(embedder provider.Embedder, store memory.FactStore, opts ...Option) *Retriever {
	r := &Retriever{
		embedder: embedder,
		store:    store,
		logger:   slog.New(nopHandler{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Search returns the top-limit facts most similar to the query. A
// limit <= 0 means DefaultLimit. Facts whose embeddings cannot be
// compared against the query are skipped, not fatal.
func (r *Retriever) Search(ctx context.Context, query string, limit int) ([]Fact, error) {
	if r.embedder == nil {
		return nil, ErrNoEmbedder
	}
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	stored, err := r.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load facts: %w", err)
	}

	hits := make([]Fact, 0, len(stored))
	for _, f := range stored {
		score, err := Cosine(queryVec, f.Embedding)
		if err != nil {
			r.logger.Warn("skipping fact with incomparable embedding",
				slog.String("fact_id", f.ID),
				slog.Any("error", err))
			continue
		}
		hits = append(hits, Fact{Content: f.Content, Score: score, Metadata: f.Metadata})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Seed embeds each entry and inserts it into the fact store. Used by
// the seed command to load the starter corpus.
func (r *Retriever) Seed(ctx context.Context, entries []memory.Fact) error {
	if r.embedder == nil {
		return ErrNoEmbedder
	}
	for i, entry := range entries {
		if entry.Content == "" {
			return fmt.Errorf("%w: entry %d", ErrEmptyContent, i)
		}
		vec, err := r.embedder.Embed(ctx, entry.Content)
		if err != nil {
			return fmt.Errorf("embed entry %d: %w", i, err)
		}
		entry.Embedding = vec
		if err := r.store.Insert(ctx, entry); err != nil {
			return fmt.Errorf("insert entry %d: %w", i, err)
		}
		r.logger.Debug("seeded fact", slog.String("fact_id", entry.ID))
	}
	return nil
}

// Cosine returns the cosine similarity between two vectors.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensions, len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, ErrZeroVector
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }
