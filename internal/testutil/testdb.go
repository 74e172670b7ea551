package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/boardwalk/internal/db"
)

// NewTestDB opens a migrated in-memory database closed at test cleanup. It
// holds a single connection, so a test must not read through a non-tx repo
// while a unit of work is open.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
