package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaVersion = 1

// schemaStatements are executed in order to create the database schema.
// All use IF NOT EXISTS for idempotent re-application.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS messages (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		content    TEXT NOT NULL,
		sender     TEXT NOT NULL,
		type       TEXT NOT NULL DEFAULT 'text',
		audio_url  TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_messages_user ON messages(user_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS summaries (
		user_id       TEXT    NOT NULL,
		content       TEXT    NOT NULL,
		message_count INTEGER NOT NULL,
		created_at    TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_summaries_user ON summaries(user_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS profiles (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL DEFAULT '',
		nickname      TEXT NOT NULL DEFAULT '',
		topic         TEXT NOT NULL DEFAULT '',
		persona       TEXT NOT NULL DEFAULT '',
		location      TEXT NOT NULL DEFAULT '',
		gender        TEXT NOT NULL DEFAULT '',
		session_count INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS facts (
		id        TEXT PRIMARY KEY,
		content   TEXT NOT NULL,
		embedding BLOB NOT NULL,
		metadata  TEXT NOT NULL DEFAULT '{}'
	)`,
}

// migrate creates or updates the database schema to the latest version.
// All DDL uses IF NOT EXISTS, making migration idempotent.
func migrate(db *sql.DB) error {
	ctx := context.TODO()

	if _, err := db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)"); err != nil {
		return fmt.Errorf("sqlite: create schema_version: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current); err != nil {
		return fmt.Errorf("sqlite: read schema version: %w", err)
	}

	if current >= schemaVersion {
		return nil
	}

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: migrate: %w\nstatement: %s", err, stmt)
		}
	}

	if _, err := db.ExecContext(ctx, "INSERT OR REPLACE INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("sqlite: record schema version: %w", err)
	}

	return nil
}
