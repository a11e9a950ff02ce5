package bookings

import (
	"context"

	"github.com/firflight/firflight/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, b *models.Booking) (*models.Booking, error)
	// ListByUser returns the user's bookings, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
}
