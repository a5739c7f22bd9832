package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/matlog/internal/db"
	"github.com/alexanderramin/matlog/internal/domain"
)

// moveColumns is the canonical SELECT column list for moves.
const moveColumns = `id, owner_id, plan_name, name, description, parent_id, order_index,
		created_at, updated_at`

// SQLMoveRepo implements MoveRepo on SQLite or Postgres. Queries are written
// with '?' placeholders and rebound for the dialect.
type SQLMoveRepo struct {
	db      db.DBTX
	dialect db.Dialect
}

// NewSQLMoveRepo creates a SQLMoveRepo over conn, which may be a *sql.DB or a *sql.Tx.
func NewSQLMoveRepo(conn db.DBTX, driver db.Driver) *SQLMoveRepo {
	return &SQLMoveRepo{db: conn, dialect: db.Dialect{Driver: driver}}
}

func (r *SQLMoveRepo) WithTx(tx db.DBTX) MoveRepo {
	return &SQLMoveRepo{db: tx, dialect: r.dialect}
}

func (r *SQLMoveRepo) Create(ctx context.Context, m *domain.Move) error {
	query := r.dialect.Rebind(`INSERT INTO moves (id, owner_id, plan_name, name, description,
		parent_id, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.OwnerID,
		m.PlanName,
		m.Name,
		nullableString(m.Description),
		nullableString(m.ParentID),
		m.OrderIndex,
		formatTime(m.CreatedAt),
		formatTime(m.UpdatedAt),
	)
	if err != nil {
		if m.ParentID != nil && db.IsForeignKeyViolation(err) {
			return fmt.Errorf("parent move %s: %w", *m.ParentID, domain.ErrNotFound)
		}
		return storageErr("inserting move", err)
	}
	return nil
}

func (r *SQLMoveRepo) GetByID(ctx context.Context, id string) (*domain.Move, error) {
	query := r.dialect.Rebind(`SELECT ` + moveColumns + ` FROM moves WHERE id = ?`)
	return r.scanMove(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLMoveRepo) GetOwned(ctx context.Context, id, ownerID string) (*domain.Move, error) {
	query := r.dialect.Rebind(`SELECT ` + moveColumns + ` FROM moves WHERE id = ? AND owner_id = ?`)
	return r.scanMove(r.db.QueryRowContext(ctx, query, id, ownerID))
}

func (r *SQLMoveRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Move, error) {
	query := r.dialect.Rebind(`SELECT ` + moveColumns + ` FROM moves WHERE owner_id = ?
		ORDER BY plan_name, order_index, created_at, id`)
	moves, err := r.queryMoves(ctx, "listing moves by owner", query, ownerID)
	if err != nil {
		return nil, err
	}
	// Postgres orders text by collation; plan names are grouped bytewise.
	slices.SortStableFunc(moves, func(a, b *domain.Move) int {
		return strings.Compare(a.PlanName, b.PlanName)
	})
	return moves, nil
}

func (r *SQLMoveRepo) ListByPlan(ctx context.Context, ownerID, planName string) ([]*domain.Move, error) {
	query := r.dialect.Rebind(`SELECT ` + moveColumns + ` FROM moves WHERE owner_id = ? AND plan_name = ?
		ORDER BY order_index, created_at, id`)
	return r.queryMoves(ctx, "listing moves by plan", query, ownerID, planName)
}

func (r *SQLMoveRepo) ListPlanNames(ctx context.Context, ownerID string) ([]string, error) {
	query := r.dialect.Rebind(`SELECT DISTINCT plan_name FROM moves WHERE owner_id = ?`)
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, storageErr("listing plan names", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storageErr("scanning plan name", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating plan names", err)
	}
	slices.Sort(names)
	return names, nil
}

func (r *SQLMoveRepo) ListPlanSummaries(ctx context.Context, ownerID string) ([]domain.PlanSummary, error) {
	query := r.dialect.Rebind(`SELECT plan_name, COUNT(*),
		SUM(CASE WHEN parent_id IS NULL THEN 1 ELSE 0 END)
		FROM moves WHERE owner_id = ? GROUP BY plan_name`)
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, storageErr("listing plans", err)
	}
	defer rows.Close()

	var plans []domain.PlanSummary
	for rows.Next() {
		var p domain.PlanSummary
		if err := rows.Scan(&p.Name, &p.MoveCount, &p.RootCount); err != nil {
			return nil, storageErr("scanning plan summary", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating plans", err)
	}
	slices.SortFunc(plans, func(a, b domain.PlanSummary) int {
		return strings.Compare(a.Name, b.Name)
	})
	return plans, nil
}

// ListChildIDs returns the ids of ownerID's moves whose parent is one of parentIDs.
func (r *SQLMoveRepo) ListChildIDs(ctx context.Context, ownerID string, parentIDs []string) ([]string, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	query, args, err := r.dialect.In(`SELECT id FROM moves WHERE owner_id = ? AND parent_id IN (?)
		ORDER BY order_index, created_at, id`, ownerID, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("building child query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("listing child moves", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storageErr("scanning child move id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating child moves", err)
	}
	return ids, nil
}

func (r *SQLMoveRepo) Update(ctx context.Context, m *domain.Move) error {
	query := r.dialect.Rebind(`UPDATE moves SET name = ?, description = ?, order_index = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`)
	res, err := r.db.ExecContext(ctx, query,
		m.Name,
		nullableString(m.Description),
		m.OrderIndex,
		formatTime(m.UpdatedAt),
		m.ID,
		m.OwnerID,
	)
	if err != nil {
		return storageErr("updating move", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("updating move", err)
	}
	if n == 0 {
		return fmt.Errorf("move %s: %w", m.ID, domain.ErrNotFound)
	}
	return nil
}

// DeleteIDs removes ownerID's moves with the given ids in one statement and
// returns how many rows went away. The ids must include every descendant of
// each deleted move.
func (r *SQLMoveRepo) DeleteIDs(ctx context.Context, ownerID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := r.dialect.In(`DELETE FROM moves WHERE owner_id = ? AND id IN (?)`, ownerID, ids)
	if err != nil {
		return 0, fmt.Errorf("building delete query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		// A surviving row still points into the set: the tree grew after the
		// caller collected it.
		if db.IsForeignKeyViolation(err) {
			return 0, &domain.StorageError{Op: "deleting moves", Err: err, Conflict: true}
		}
		return 0, storageErr("deleting moves", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("deleting moves", err)
	}
	return n, nil
}

func (r *SQLMoveRepo) DeleteByPlan(ctx context.Context, ownerID, planName string) (int64, error) {
	query := r.dialect.Rebind(`DELETE FROM moves WHERE owner_id = ? AND plan_name = ?`)
	res, err := r.db.ExecContext(ctx, query, ownerID, planName)
	if err != nil {
		return 0, storageErr("deleting plan", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("deleting plan", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLMoveRepo) scanMove(row *sql.Row) (*domain.Move, error) {
	m, err := scanMoveFields(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("move: %w", domain.ErrNotFound)
		}
		return nil, storageErr("scanning move", err)
	}
	return m, nil
}

func (r *SQLMoveRepo) queryMoves(ctx context.Context, op, query string, args ...any) ([]*domain.Move, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	var moves []*domain.Move
	for rows.Next() {
		m, err := scanMoveFields(rows)
		if err != nil {
			return nil, storageErr("scanning move row", err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return moves, nil
}

func scanMoveFields(s rowScanner) (*domain.Move, error) {
	var m domain.Move
	var description, parentID sql.NullString
	var createdAtStr, updatedAtStr string

	if err := s.Scan(
		&m.ID, &m.OwnerID, &m.PlanName, &m.Name, &description, &parentID, &m.OrderIndex,
		&createdAtStr, &updatedAtStr,
	); err != nil {
		return nil, err
	}

	m.Description = stringPtr(description)
	m.ParentID = stringPtr(parentID)

	var err error
	m.CreatedAt, err = time.Parse(timestampLayout, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	m.UpdatedAt, err = time.Parse(timestampLayout, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &m, nil
}
