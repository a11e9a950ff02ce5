package events

import (
	"context"

	"github.com/firflight/firflight/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.Event) error
}
