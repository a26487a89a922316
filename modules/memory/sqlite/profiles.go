package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safespace-sl/safespace/internal/memory"
)

// Get returns the profile for the user, or memory.ErrNotFound.
func (p *profileStore) Get(ctx context.Context, userID string) (memory.Profile, error) {
	var profile memory.Profile
	err := p.db.QueryRowContext(ctx, `
		SELECT id, email, nickname, topic, persona, location, gender, session_count
		FROM profiles
		WHERE id = ?`,
		userID,
	).Scan(
		&profile.ID, &profile.Email, &profile.Nickname, &profile.Topic,
		&profile.Persona, &profile.Location, &profile.Gender, &profile.SessionCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return memory.Profile{}, memory.ErrNotFound
		}
		return memory.Profile{}, fmt.Errorf("sqlite: get profile: %w", err)
	}
	return profile, nil
}

// Upsert stores or replaces a profile. Exposed for the seed command
// and tests; the serving path only reads profiles.
func (p *profileStore) Upsert(ctx context.Context, profile memory.Profile) error {
	if profile.ID == "" {
		return fmt.Errorf("sqlite: upsert profile: empty id")
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO profiles (id, email, nickname, topic, persona, location, gender, session_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.ID, profile.Email, profile.Nickname, profile.Topic,
		profile.Persona, profile.Location, profile.Gender, profile.SessionCount,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upsert profile: %w", err)
	}
	return nil
}
