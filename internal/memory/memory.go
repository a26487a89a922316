// Package memory defines the persistence contracts for conversations,
// summaries, user profiles, and the knowledge fact store, along with a
// bounded in-process cache of recent turns.
package memory

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no stored row.
var ErrNotFound = errors.New("not found")

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderCounselor Sender = "counselor"
)

// Message is one persisted chat message.
type Message struct {
	ID        string
	UserID    string
	Content   string
	Sender    Sender
	Type      string
	AudioURL  string
	CreatedAt time.Time
}

// Summary is a condensed view of a user's conversation history,
// produced asynchronously once enough unsummarized messages pile up.
type Summary struct {
	UserID       string
	Content      string
	MessageCount int
	CreatedAt    time.Time
}

// Profile carries the durable user attributes the counselor
// personalizes against. Users without an email are guests.
type Profile struct {
	ID           string
	Email        string
	Nickname     string
	Topic        string
	Persona      string
	Location     string
	Gender       string
	SessionCount int
}

// Guest reports whether the profile belongs to an anonymous user.
// Guests never get persisted summaries.
func (p Profile) Guest() bool { return p.Email == "" }

// Fact is one knowledge-base entry with its embedding vector.
type Fact struct {
	ID        string
	Content   string
	Embedding []float32
	Metadata  map[string]string
}

// HistoryStore persists chat messages.
type HistoryStore interface {
	Append(ctx context.Context, msg Message) error

	// Recent returns up to n most recent messages for the user in
	// chronological order.
	Recent(ctx context.Context, userID string, n int) ([]Message, error)

	// Count returns the number of stored messages for the user.
	Count(ctx context.Context, userID string) (int, error)

	// PurgeOlderThan deletes messages created before the cutoff and
	// returns how many were removed.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SummaryStore persists conversation summaries.
type SummaryStore interface {
	// Latest returns the most recent summary for the user, or
	// ErrNotFound when none exists.
	Latest(ctx context.Context, userID string) (Summary, error)

	Save(ctx context.Context, s Summary) error
}

// ProfileStore reads user profiles.
type ProfileStore interface {
	// Get returns the profile for the user, or ErrNotFound.
	Get(ctx context.Context, userID string) (Profile, error)
}

// FactStore persists knowledge facts with embeddings.
type FactStore interface {
	Insert(ctx context.Context, f Fact) error

	// All returns every stored fact. The retriever scans them for
	// nearest-neighbor search; the corpus is small by design.
	All(ctx context.Context) ([]Fact, error)
}
