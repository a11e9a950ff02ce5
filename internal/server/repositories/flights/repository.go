package flights

import (
	"context"
	"time"

	"github.com/firflight/firflight/internal/server/models"
)

type Repository interface {
	// Search returns flights on the route departing in [from, to).
	Search(ctx context.Context, origin, destination string, from, to time.Time) ([]models.Flight, error)
	Get(ctx context.Context, id string) (*models.Flight, error)
	// Reserve takes seats from the flight's inventory and returns the
	// seats left. It fails with common.ErrSoldOut when not enough remain.
	Reserve(ctx context.Context, id string, seats int) (int, error)
}
