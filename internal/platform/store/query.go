package store

import (
	"context"
	"errors"

	perr "cgeo/internal/platform/errors"
)

// ErrTooManyRows is One finding a second row
var ErrTooManyRows = errors.New("store: more than one row")

// RowFunc maps the current row
type RowFunc[T any] func(Row) (T, error)

// Scalar scans a single column, no rows is the driver's error
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (v T, err error) {
	err = q.QueryRow(ctx, sql, args...).Scan(&v)
	return v, err
}

// collect maps rows until they run out or more than limit were seen, limit 0 is unbounded
func collect[T any](ctx context.Context, q RowQuerier, scan RowFunc[T], limit int, sql string, args []any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		if limit > 0 && len(out) == limit {
			return nil, ErrTooManyRows
		}
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// One wants exactly one row, none is perr.ErrNotFound
func One[T any](ctx context.Context, q RowQuerier, scan RowFunc[T], sql string, args ...any) (T, error) {
	var zero T
	xs, err := collect(ctx, q, scan, 1, sql, args)
	if err != nil {
		return zero, err
	}
	if len(xs) == 0 {
		return zero, perr.ErrNotFound
	}
	return xs[0], nil
}

// Many never returns a nil slice without an error
func Many[T any](ctx context.Context, q RowQuerier, scan RowFunc[T], sql string, args ...any) ([]T, error) {
	return collect(ctx, q, scan, 0, sql, args)
}

// ExecOne fails with ErrorCodeDB unless exactly one row was written
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err == nil && tag.RowsAffected() != 1 {
		err = perr.Newf(perr.ErrorCodeDB, "expected one row affected, got %d", tag.RowsAffected())
	}
	return err
}
