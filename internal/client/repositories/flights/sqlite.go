package flights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/firflight/firflight/internal/client/models"
	"github.com/firflight/firflight/internal/client/store"
	"github.com/firflight/firflight/internal/client/tables"
	"github.com/firflight/firflight/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func routeFilter(from, to string, day time.Time) (string, []any) {
	where := "origin = ? AND destination = ?"
	args := []any{strings.ToUpper(from), strings.ToUpper(to)}
	if !day.IsZero() {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		where += " AND departs_at >= ? AND departs_at < ?"
		args = append(args, tables.Stamp(start), tables.Stamp(start.AddDate(0, 0, 1)))
	}
	return where, args
}

func (r *SQLiteRepository) ReplaceRoute(ctx context.Context, from, to string, day time.Time, fs []models.Flight) error {
	where, args := routeFilter(from, to, day)
	if _, err := store.Delete(ctx, r.db, tables.Flights, where, args...); err != nil {
		return fmt.Errorf("failed to replace flights %s-%s: %w", from, to, err)
	}
	for _, f := range fs {
		if err := store.Put(ctx, r.db, tables.Flights, f); err != nil {
			return fmt.Errorf("failed to replace flights %s-%s: %w", from, to, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Search(ctx context.Context, from, to string, day time.Time) ([]models.Flight, error) {
	where, args := routeFilter(from, to, day)
	fs, err := store.List(ctx, r.db, tables.Flights, "WHERE "+where+" ORDER BY departs_at, number", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search flights %s-%s: %w", from, to, err)
	}
	return fs, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, f models.Flight) error {
	if err := store.Put(ctx, r.db, tables.Flights, f); err != nil {
		return fmt.Errorf("failed to save flight[%s]: %w", f.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (models.Flight, error) {
	f, err := store.Get(ctx, r.db, tables.Flights, "id = ?", id)
	if err != nil {
		return models.Flight{}, fmt.Errorf("failed to get flight[%s]: %w", id, err)
	}
	return f, nil
}
