package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"item-store/internal/repository"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// entity describes a table well enough for the generic CRUD helpers:
// table name, selectable columns and a row scanner. Entity repositories
// compose one of these instead of subclassing a base repository.
type entity[T any] struct {
	table   string
	columns []string
	scan    func(row rowScanner) (*T, error)
}

func (e entity[T]) selectClause() string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(e.columns, ", "), e.table)
}

// findByID fetches a single row by primary key.
func (e entity[T]) findByID(ctx context.Context, db *sql.DB, id int64) (*T, error) {
	row := db.QueryRowContext(ctx, e.selectClause()+" WHERE id = ?", id)
	return e.scanOne(row)
}

// findByField fetches a single row by an exact match on one column. The
// column name is always a code constant; only the value is bound.
func (e entity[T]) findByField(ctx context.Context, db *sql.DB, field string, value any) (*T, error) {
	row := db.QueryRowContext(ctx, e.selectClause()+" WHERE "+field+" = ?", value)
	return e.scanOne(row)
}

func (e entity[T]) exists(ctx context.Context, db *sql.DB, field string, value any) (bool, error) {
	var n int
	query := fmt.Sprintf("SELECT COUNT(1) FROM %s WHERE %s = ?", e.table, field)
	if err := db.QueryRowContext(ctx, query, value).Scan(&n); err != nil {
		return false, fmt.Errorf("%s exists: %w", e.table, err)
	}
	return n > 0, nil
}

func (e entity[T]) count(ctx context.Context, db *sql.DB) (int64, error) {
	var n int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(1) FROM "+e.table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", e.table, err)
	}
	return n, nil
}

// deleteByID removes a row, reporting ErrNotFound when nothing matched.
func (e entity[T]) deleteByID(ctx context.Context, db *sql.DB, id int64) error {
	res, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", e.table), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", e.table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s rows affected: %w", e.table, err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (e entity[T]) scanOne(row rowScanner) (*T, error) {
	v, err := e.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan %s: %w", e.table, err)
	}
	return v, nil
}

// queryMany runs a SELECT built from the entity's column list plus the given
// suffix (WHERE/ORDER BY/LIMIT) and scans every row.
func (e entity[T]) queryMany(ctx context.Context, db *sql.DB, suffix string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, e.selectClause()+" "+suffix, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", e.table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := e.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", e.table, err)
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", e.table, err)
	}
	return out, nil
}

// mapDuplicate converts sqlite uniqueness violations into ErrDuplicate.
func mapDuplicate(err error) error {
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	}
	return err
}
