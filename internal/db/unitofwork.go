package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/matlog/internal/domain"
)

// UnitOfWork manages transactional boundaries. The callback receives a DBTX
// backed by a *sql.Tx; callers create tx-scoped repositories from it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLUnitOfWork implements UnitOfWork using database/sql transactions.
type SQLUnitOfWork struct {
	db   *sql.DB
	opts *sql.TxOptions
}

// NewUnitOfWork creates a UnitOfWork for the given driver. Postgres
// transactions run SERIALIZABLE; SQLite transactions are serialized by the
// database lock already.
func NewUnitOfWork(db *sql.DB, driver Driver) *SQLUnitOfWork {
	u := &SQLUnitOfWork{db: db}
	if driver == DriverPostgres {
		u.opts = &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	return u
}

// WithinTx runs fn in a transaction. The transaction commits when fn returns
// nil and rolls back on error, panic, or cancellation of ctx.
func (u *SQLUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, u.opts)
	if err != nil {
		return txErr("beginning transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return txErr("committing transaction", err)
	}
	return nil
}

// txErr keeps lock timeouts and serialization failures at BEGIN or COMMIT
// recognizable as domain.ErrConflict.
func txErr(op string, err error) error {
	if IsConflict(err) {
		return &domain.StorageError{Op: op, Err: err, Conflict: true}
	}
	return fmt.Errorf("%s: %w", op, err)
}
