package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/firflight/firflight/internal/common"
	"github.com/firflight/firflight/internal/dbx"
	"github.com/firflight/firflight/internal/server/models"
	"github.com/firflight/firflight/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// MaxEventsPerBatch bounds one upload.
const MaxEventsPerBatch = 500

// EventInput is an analytics event as reported by a client.
type EventInput struct {
	Name       string
	Attributes map[string]any
	OccurredAt time.Time
}

type EventService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewEventService(db *sql.DB, m repomanager.RepositoryManager) *EventService {
	return &EventService{db: db, repomanager: m, now: time.Now}
}

// Record stores a batch of events for userID (empty for anonymous
// clients). The batch is stored atomically.
func (s *EventService) Record(ctx context.Context, userID string, in []EventInput) (int, error) {
	if len(in) > MaxEventsPerBatch {
		return 0, fmt.Errorf("%w: at most %d events per batch", common.ErrValidation, MaxEventsPerBatch)
	}

	events := make([]*models.Event, 0, len(in))
	for _, e := range in {
		if e.Name == "" {
			return 0, fmt.Errorf("%w: event name is required", common.ErrValidation)
		}
		attrs, err := json.Marshal(e.Attributes)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", common.ErrValidation, err)
		}
		if e.Attributes == nil {
			attrs = []byte("{}")
		}
		occurred := e.OccurredAt
		if occurred.IsZero() {
			occurred = s.now()
		}
		events = append(events, &models.Event{
			ID:         uuid.NewString(),
			UserID:     userID,
			Name:       e.Name,
			Attributes: attrs,
			OccurredAt: occurred.UTC(),
		})
	}

	if len(events) == 0 {
		return 0, nil
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Events(tx)
		for _, e := range events {
			if err := repo.Create(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("error storing events: %w", err)
	}
	return len(events), nil
}
