package users

import (
	"context"
	"errors"
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

func (r *SQLiteRepository) Save(ctx context.Context, u models.User) error {
	if _, err := store.Delete(ctx, r.db, tables.Users, "id <> ?", u.ID); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	if err := store.Put(ctx, r.db, tables.Users, u); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Current(ctx context.Context) (*models.User, error) {
	u, err := store.Get(ctx, r.db, tables.Users, "1 = 1 ORDER BY created_at DESC")
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return &u, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if err := store.Clear(ctx, r.db, tables.Users); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	return nil
}
