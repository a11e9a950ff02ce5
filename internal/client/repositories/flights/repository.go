// Package flights caches flight search results for offline browsing.
package flights

import (
	"context"
	"time"

	"github.com/firflight/firflight/internal/client/models"
)

type Repository interface {
	// ReplaceRoute drops cached flights for the route (and day, when not
	// zero) and stores fs in their place.
	ReplaceRoute(ctx context.Context, from, to string, day time.Time, fs []models.Flight) error
	// Search returns cached flights for the route ordered by departure. A zero
	// day matches every day.
	Search(ctx context.Context, from, to string, day time.Time) ([]models.Flight, error)
	Save(ctx context.Context, f models.Flight) error
	// Get returns store.ErrNotFound when the flight is not cached.
	Get(ctx context.Context, id string) (models.Flight, error)
}
