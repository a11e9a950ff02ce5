// Package users stores the signed-in user's profile.
package users

import (
	"context"

	"github.com/firflight/firflight/internal/client/models"
)

// Repository holds at most one user: the one currently signed in.
type Repository interface {
	// Save replaces the stored user.
	Save(ctx context.Context, u models.User) error
	// Current returns the stored user, or nil when nobody is signed in.
	Current(ctx context.Context) (*models.User, error)
	Clear(ctx context.Context) error
}
