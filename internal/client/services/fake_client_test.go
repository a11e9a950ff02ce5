package services

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/firflight/firflight/internal/api"
	"github.com/firflight/firflight/internal/client/models"
	"github.com/firflight/firflight/internal/client/store"
	"github.com/firflight/firflight/internal/client/tables"
	"github.com/firflight/firflight/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu sync.Mutex

	token string

	signInToken string
	signInUser  *models.User
	signInErr   error

	signUpUser *models.User
	signUpErr  error

	flights   []models.Flight
	searchErr error

	flight    *models.Flight
	flightErr error

	booking *models.Booking
	bookErr error

	bookings    []models.Booking
	bookingsErr error

	ticketURL string
	ticketErr error
	body      string
	dlErr     error

	pingErr error
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) SetAccessToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeClient) accessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeClient) SignIn(ctx context.Context, email, password string) (string, *models.User, error) {
	return f.signInToken, f.signInUser, f.signInErr
}

func (f *fakeClient) SignUp(ctx context.Context, email, password, name string) (*models.User, error) {
	return f.signUpUser, f.signUpErr
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) { return f.signInUser, nil }

func (f *fakeClient) SearchFlights(ctx context.Context, from, to string, day time.Time) ([]models.Flight, error) {
	return f.flights, f.searchErr
}

func (f *fakeClient) GetFlight(ctx context.Context, id string) (*models.Flight, error) {
	return f.flight, f.flightErr
}

func (f *fakeClient) Book(ctx context.Context, flightID string, seats int) (*models.Booking, error) {
	return f.booking, f.bookErr
}

func (f *fakeClient) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return f.bookings, f.bookingsErr
}

func (f *fakeClient) TicketURL(ctx context.Context, bookingID string) (string, error) {
	return f.ticketURL, f.ticketErr
}

func (f *fakeClient) SendEvents(ctx context.Context, events []api.Event) error { return nil }

func (f *fakeClient) Download(ctx context.Context, url string, w io.Writer) error {
	if f.dlErr != nil {
		return f.dlErr
	}
	_, err := io.Copy(w, strings.NewReader(f.body))
	return err
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "client.db"), logging.Discard(), tables.All()...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}
