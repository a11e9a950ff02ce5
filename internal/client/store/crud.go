package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/firflight/firflight/internal/client/tables"
	"github.com/firflight/firflight/internal/dbx"
)

// Put inserts v, replacing any row with the same primary key.
func Put[T any](ctx context.Context, db dbx.DBTX, t tables.Table[T], v T) error {
	row := t.ToRow(v)
	cols := row.Columns()
	args := make([]any, len(cols))
	for i, c := range cols {
		args[i] = row[c]
	}

	query := fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		t.Name(), strings.Join(cols, ", "), placeholders(len(cols)))

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put %s: %w", t.Name(), err)
	}
	return nil
}

// Get returns the first row matching where, or ErrNotFound.
func Get[T any](ctx context.Context, db dbx.DBTX, t tables.Table[T], where string, args ...any) (T, error) {
	var zero T

	items, err := List(ctx, db, t, "WHERE "+where+" LIMIT 1", args...)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, ErrNotFound
	}
	return items[0], nil
}

// List returns all rows of t. The clause is appended to the SELECT and may
// hold WHERE, ORDER BY and LIMIT parts.
func List[T any](ctx context.Context, db dbx.DBTX, t tables.Table[T], clause string, args ...any) ([]T, error) {
	query := "SELECT * FROM " + t.Name()
	if clause != "" {
		query += " " + clause
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", t.Name(), err)
	}
	defer rows.Close()

	var result []T
	err = scanRows(rows, func(r tables.Row) error {
		v, err := t.FromRow(r)
		if err != nil {
			return err
		}
		result = append(result, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.Name(), err)
	}
	return result, nil
}

// Delete removes the rows matching where and reports how many were removed.
func Delete(ctx context.Context, db dbx.DBTX, s tables.Schema, where string, args ...any) (int64, error) {
	res, err := db.ExecContext(ctx, "DELETE FROM "+s.Name()+" WHERE "+where, args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", s.Name(), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// Clear removes every row of s.
func Clear(ctx context.Context, db dbx.DBTX, s tables.Schema) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM "+s.Name()); err != nil {
		return fmt.Errorf("clear %s: %w", s.Name(), err)
	}
	return nil
}

func scanRows(rows *sql.Rows, fn func(tables.Row) error) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}

		row := make(tables.Row, len(cols))
		for i, c := range cols {
			row[c] = values[i]
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
