package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/matlog/internal/db"
	"github.com/alexanderramin/matlog/internal/repository"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(context.Background(), db.DriverSQLite, db.MemoryDSN)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewUnitOfWork(database, db.DriverSQLite)
}

// NewTestMoveRepo creates a SQLite move repo over database.
func NewTestMoveRepo(database *sql.DB) *repository.SQLMoveRepo {
	return repository.NewSQLMoveRepo(database, db.DriverSQLite)
}

// CountMoves scans the whole table, ignoring owners.
func CountMoves(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM moves`).Scan(&n); err != nil {
		t.Fatalf("counting moves: %v", err)
	}
	return n
}

// MoveIDs returns every move id in the table, sorted.
func MoveIDs(t *testing.T, database *sql.DB) []string {
	t.Helper()
	rows, err := database.Query(`SELECT id FROM moves ORDER BY id`)
	if err != nil {
		t.Fatalf("listing move ids: %v", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("scanning move id: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}
