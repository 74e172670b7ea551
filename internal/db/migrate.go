package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full set is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS memberships (
		org_id     TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (org_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS boards (
		id         TEXT PRIMARY KEY,
		org_id     TEXT NOT NULL,
		title      TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS lists (
		id          TEXT PRIMARY KEY,
		board_id    TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		order_index INTEGER NOT NULL CHECK (order_index >= 0),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS cards (
		id          TEXT PRIMARY KEY,
		list_id     TEXT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT,
		order_index INTEGER NOT NULL CHECK (order_index >= 0),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_boards_org ON boards(org_id)`,
	`CREATE INDEX IF NOT EXISTS idx_lists_board_order ON lists(board_id, order_index)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_list_order ON cards(list_id, order_index)`,
	`CREATE INDEX IF NOT EXISTS idx_memberships_user ON memberships(user_id)`,
}
