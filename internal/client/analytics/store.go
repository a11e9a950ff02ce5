package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/firflight/firflight/internal/api"
	"github.com/firflight/firflight/internal/client/models"
	"github.com/firflight/firflight/internal/client/store"
	"github.com/firflight/firflight/internal/client/tables"
	"github.com/firflight/firflight/internal/dbx"
	"github.com/firflight/firflight/internal/logging"
	"github.com/google/uuid"
)

const defaultBatch = 100

// Sender uploads events to the analytics backend.
type Sender interface {
	SendEvents(ctx context.Context, events []api.Event) error
}

// StoreTracker queues events in the local events table.
type StoreTracker struct {
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time
}

// NewStoreTracker returns a tracker queueing into db, which must have the
// events table.
func NewStoreTracker(db *sql.DB, logger logging.Logger) *StoreTracker {
	return &StoreTracker{db: db, logger: logger.With("module", "analytics"), now: time.Now}
}

// Track queues e. Attributes that cannot be encoded as JSON are dropped with
// a warning; the rest of the event is still queued.
func (t *StoreTracker) Track(ctx context.Context, e Event) {
	if _, dropped := tables.EncodeAttributes(e.Attributes); len(dropped) > 0 {
		t.logger.Warn(ctx, "dropping unencodable event attributes", "event", e.Name, "attributes", dropped)
		attrs := make(map[string]any, len(e.Attributes))
		for k, v := range e.Attributes {
			attrs[k] = v
		}
		for _, k := range dropped {
			delete(attrs, k)
		}
		e.Attributes = attrs
	}
	q := models.QueuedEvent{
		ID:         uuid.NewString(),
		Name:       e.Name,
		Attributes: e.Attributes,
		CreatedAt:  t.now().UTC(),
	}
	if err := store.Put(ctx, t.db, tables.Events, q); err != nil {
		t.logger.Warn(ctx, "failed to queue event", "event", e.Name, "error", err)
	}
}

// Pending returns queued events, oldest first.
func (t *StoreTracker) Pending(ctx context.Context, limit int) ([]models.QueuedEvent, error) {
	return store.List(ctx, t.db, tables.Events, "ORDER BY created_at, id LIMIT ?", limit)
}

// Flush uploads queued events in batches and removes each batch once the
// sender accepted it. It returns the number of events sent. Events stay
// queued when the sender fails.
func (t *StoreTracker) Flush(ctx context.Context, sender Sender) (int, error) {
	sent := 0
	for {
		batch, err := t.Pending(ctx, defaultBatch)
		if err != nil {
			return sent, fmt.Errorf("flush events: %w", err)
		}
		if len(batch) == 0 {
			return sent, nil
		}

		out := make([]api.Event, 0, len(batch))
		ids := make([]any, 0, len(batch))
		for _, q := range batch {
			out = append(out, api.Event{Name: q.Name, Attributes: q.Attributes, OccurredAt: q.CreatedAt})
			ids = append(ids, q.ID)
		}

		if err := sender.SendEvents(ctx, out); err != nil {
			return sent, err
		}

		err = dbx.WithTx(ctx, t.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			where := "id IN (" + strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ") + ")"
			_, err := store.Delete(ctx, tx, tables.Events, where, ids...)
			return err
		})
		if err != nil {
			return sent, fmt.Errorf("flush events: %w", err)
		}
		sent += len(batch)
		t.logger.Debug(ctx, "events flushed", "count", len(batch))
	}
}
