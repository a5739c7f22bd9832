package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent and valid on both
// SQLite and Postgres, so it runs on each open.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS moves (
		id          TEXT PRIMARY KEY,
		owner_id    TEXT NOT NULL,
		plan_name   TEXT NOT NULL CHECK(plan_name <> ''),
		name        TEXT NOT NULL CHECK(name <> ''),
		description TEXT,
		parent_id   TEXT REFERENCES moves(id),
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_moves_owner_plan ON moves(owner_id, plan_name, order_index)`,

	`CREATE INDEX IF NOT EXISTS idx_moves_owner_parent ON moves(owner_id, parent_id)`,
}
