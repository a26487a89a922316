package sqlite

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/safespace-sl/safespace/internal/memory"
)

// Append stores a message. A missing ID or timestamp is filled in.
func (h *historyStore) Append(ctx context.Context, msg memory.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.UserID == "" {
		return fmt.Errorf("sqlite: append message: empty user id")
	}
	if msg.Type == "" {
		msg.Type = "text"
	}
	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := h.db.ExecContext(ctx, `
		INSERT INTO messages (id, user_id, content, sender, type, audio_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.UserID, msg.Content, string(msg.Sender), msg.Type, msg.AudioURL,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: append message: %w", err)
	}
	return nil
}

// Recent returns up to n most recent messages for the user in
// chronological order.
func (h *historyStore) Recent(ctx context.Context, userID string, n int) ([]memory.Message, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT id, user_id, content, sender, type, audio_url, created_at
		FROM messages
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		userID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: recent messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var msgs []memory.Message
	for rows.Next() {
		var (
			msg          memory.Message
			sender       string
			createdAtStr string
		)
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Content, &sender, &msg.Type, &msg.AudioURL, &createdAtStr); err != nil {
			return nil, fmt.Errorf("sqlite: scan message: %w", err)
		}
		msg.Sender = memory.Sender(sender)
		if createdAtStr != "" {
			t, err := time.Parse(time.RFC3339Nano, createdAtStr)
			if err != nil {
				return nil, fmt.Errorf("sqlite: parse created_at %q: %w", createdAtStr, err)
			}
			msg.CreatedAt = t
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: recent messages rows: %w", err)
	}

	// Reverse to chronological order.
	slices.Reverse(msgs)
	return msgs, nil
}

// Count returns the number of stored messages for the user.
func (h *historyStore) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := h.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE user_id = ?", userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: count messages: %w", err)
	}
	return count, nil
}

// PurgeOlderThan deletes messages created before the cutoff and
// returns how many were removed. Summaries are untouched.
func (h *historyStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := h.db.ExecContext(ctx,
		"DELETE FROM messages WHERE created_at < ?",
		cutoff.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: purge messages: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: rows affected: %w", err)
	}
	return n, nil
}
