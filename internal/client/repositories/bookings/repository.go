// Package bookings caches the user's bookings.
package bookings

import (
	"context"

	"github.com/firflight/firflight/internal/client/models"
)

type Repository interface {
	Save(ctx context.Context, b models.Booking) error
	// ReplaceAll drops every cached booking and stores bs.
	ReplaceAll(ctx context.Context, bs []models.Booking) error
	// List returns bookings newest first.
	List(ctx context.Context) ([]models.Booking, error)
	// Get returns store.ErrNotFound when the booking is not cached.
	Get(ctx context.Context, id string) (models.Booking, error)
	Clear(ctx context.Context) error
}
