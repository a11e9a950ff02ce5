package events

import (
	"context"
	"fmt"

	"github.com/firflight/firflight/internal/dbx"
	"github.com/firflight/firflight/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create stores e. An empty UserID is stored as NULL.
func (r *PostgresRepository) Create(ctx context.Context, e *models.Event) error {
	query :=
		`INSERT INTO analytics_events (id, user_id, name, attributes, occurred_at)
		 VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5)`

	attrs := e.Attributes
	if len(attrs) == 0 {
		attrs = []byte("{}")
	}

	if _, err := r.db.ExecContext(ctx, query, e.ID, e.UserID, e.Name, attrs, e.OccurredAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
