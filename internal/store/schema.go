package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
)

const (
	tableUsers    = "users"
	tableProgress = "progress"
	tableHistory  = "lesson_history"
	tableEvents   = "llm_events"
)

// Schema DDL. {{id}} and {{doc}} are replaced per dialect: the remote store
// keeps progress as JSONB, the local one as TEXT.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS progress (
		user_id TEXT PRIMARY KEY,
		doc {{doc}} NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS lesson_history (
		id {{id}},
		user_id TEXT NOT NULL,
		lesson_id TEXT NOT NULL,
		language TEXT NOT NULL,
		word_count INTEGER NOT NULL,
		words TEXT NOT NULL,
		streak INTEGER NOT NULL,
		completed_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS lesson_history_user_completed
		ON lesson_history (user_id, completed_at)`,
	`CREATE TABLE IF NOT EXISTS llm_events (
		id {{id}},
		created_at BIGINT NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		latency_ms BIGINT NOT NULL,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL,
		request_body TEXT NOT NULL,
		response_body TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS llm_events_purpose ON llm_events (purpose)`,
}

// schemaStatements renders the DDL for one dialect.
func schemaStatements(d string) []string {
	id, doc := "INTEGER PRIMARY KEY AUTOINCREMENT", "TEXT"
	if d == dialect.Postgres {
		id, doc = "BIGSERIAL PRIMARY KEY", "JSONB"
	}
	r := strings.NewReplacer("{{id}}", id, "{{doc}}", doc)

	out := make([]string, len(schemaDDL))
	for i, stmt := range schemaDDL {
		out[i] = r.Replace(stmt)
	}
	return out
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements(s.dialect) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
