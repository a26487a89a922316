package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/safespace-sl/safespace/internal/memory"
)

// Latest returns the most recent summary for the user, or
// memory.ErrNotFound when none exists.
func (s *summaryStore) Latest(ctx context.Context, userID string) (memory.Summary, error) {
	var (
		summary      memory.Summary
		createdAtStr string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, content, message_count, created_at
		FROM summaries
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT 1`,
		userID,
	).Scan(&summary.UserID, &summary.Content, &summary.MessageCount, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return memory.Summary{}, memory.ErrNotFound
		}
		return memory.Summary{}, fmt.Errorf("sqlite: latest summary: %w", err)
	}

	if createdAtStr != "" {
		t, err := time.Parse(time.RFC3339Nano, createdAtStr)
		if err != nil {
			return memory.Summary{}, fmt.Errorf("sqlite: parse created_at %q: %w", createdAtStr, err)
		}
		summary.CreatedAt = t
	}
	return summary, nil
}

// Save appends a new summary row for the user.
func (s *summaryStore) Save(ctx context.Context, sum memory.Summary) error {
	if sum.UserID == "" {
		return fmt.Errorf("sqlite: save summary: empty user id")
	}
	createdAt := sum.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO summaries (user_id, content, message_count, created_at)
		VALUES (?, ?, ?, ?)`,
		sum.UserID, sum.Content, sum.MessageCount,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save summary: %w", err)
	}
	return nil
}
