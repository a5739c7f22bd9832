package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	// ErrConflict marks a transaction that lost a race with a concurrent
	// writer. The whole operation is safe to retry.
	ErrConflict = errors.New("concurrent modification")
)

// ValidationError reports a rejected input field. It matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StorageError wraps a datastore failure. Conflict is set for serialization
// failures and lock contention; such errors match ErrConflict.
type StorageError struct {
	Op       string
	Err      error
	Conflict bool
}

func (e *StorageError) Error() string {
	if e.Conflict {
		return fmt.Sprintf("%s: %v (%v)", e.Op, ErrConflict, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return e.Conflict && target == ErrConflict
}

// IsStorageError reports whether err came from the datastore.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
