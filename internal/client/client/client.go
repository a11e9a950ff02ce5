package client

import (
	"context"
	"io"
	"time"

	"github.com/firflight/firflight/internal/api"
	"github.com/firflight/firflight/internal/client/models"
)

type Client interface {
	Close() error
	SetAccessToken(token string)
	SignIn(ctx context.Context, email, password string) (string, *models.User, error)
	SignUp(ctx context.Context, email, password, name string) (*models.User, error)
	Me(ctx context.Context) (*models.User, error)
	SearchFlights(ctx context.Context, from, to string, day time.Time) ([]models.Flight, error)
	GetFlight(ctx context.Context, id string) (*models.Flight, error)
	Book(ctx context.Context, flightID string, seats int) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	TicketURL(ctx context.Context, bookingID string) (string, error)
	SendEvents(ctx context.Context, events []api.Event) error
	Download(ctx context.Context, url string, w io.Writer) error
	Ping(ctx context.Context) error
}
