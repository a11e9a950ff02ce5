package bookings

import (
	"context"
	"fmt"

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

func (r *SQLiteRepository) Save(ctx context.Context, b models.Booking) error {
	if err := store.Put(ctx, r.db, tables.Bookings, b); err != nil {
		return fmt.Errorf("failed to save booking[%s]: %w", b.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, bs []models.Booking) error {
	if err := store.Clear(ctx, r.db, tables.Bookings); err != nil {
		return fmt.Errorf("failed to replace bookings: %w", err)
	}
	for _, b := range bs {
		if err := r.Save(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Booking, error) {
	bs, err := store.List(ctx, r.db, tables.Bookings, "ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bs, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (models.Booking, error) {
	b, err := store.Get(ctx, r.db, tables.Bookings, "id = ?", id)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to get booking[%s]: %w", id, err)
	}
	return b, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if err := store.Clear(ctx, r.db, tables.Bookings); err != nil {
		return fmt.Errorf("failed to clear bookings: %w", err)
	}
	return nil
}
