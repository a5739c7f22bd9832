package repository

import (
	"database/sql"
	"time"

	"github.com/alexanderramin/matlog/internal/db"
	"github.com/alexanderramin/matlog/internal/domain"
)

// timestampLayout is fixed-width so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// storageErr wraps a driver error, flagging lock and serialization failures.
func storageErr(op string, err error) error {
	return &domain.StorageError{Op: op, Err: err, Conflict: db.IsConflict(err)}
}

// nullableString converts a *string to a value suitable for storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// stringPtr converts a scanned sql.NullString back to a *string.
func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
