package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/matlog/internal/db"
)

// FailOnNthExecUoW is a test UoW that injects an error on the Nth ExecContext
// call within a transaction. This enables rollback integration tests by
// simulating failures at precise points in multi-write operations.
//
// ExecContext calls are counted starting at 1. With AfterExec set, the Nth
// statement runs first and the error is returned afterwards, as if the
// connection dropped before the result came back.
type FailOnNthExecUoW struct {
	DB        *sql.DB
	FailOn    int32
	AfterExec bool
	Err       error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failingTx{DBTX: tx, failExecOn: u.FailOn, afterExec: u.AfterExec, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

// FailOnNthQueryUoW injects an error on the Nth QueryContext call, which is
// how multi-round-trip reads (such as a descendant walk) fail midway.
type FailOnNthQueryUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthQueryUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failingTx{DBTX: tx, failQueryOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	execs       atomic.Int32
	queries     atomic.Int32
	failExecOn  int32
	failQueryOn int32
	afterExec   bool
	err         error
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.execs.Add(1)
	if n != f.failExecOn {
		return f.DBTX.ExecContext(ctx, query, args...)
	}
	if f.afterExec {
		if _, err := f.DBTX.ExecContext(ctx, query, args...); err != nil {
			return nil, err
		}
	}
	return nil, f.err
}

func (f *failingTx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	n := f.queries.Add(1)
	if n == f.failQueryOn {
		return nil, f.err
	}
	return f.DBTX.QueryContext(ctx, query, args...)
}
