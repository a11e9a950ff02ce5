package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/firflight/firflight/internal/common"
	"github.com/firflight/firflight/internal/dbx"
	"github.com/firflight/firflight/internal/server/models"
	"github.com/firflight/firflight/internal/server/repositories/bookings"
	"github.com/firflight/firflight/internal/server/repositories/events"
	"github.com/firflight/firflight/internal/server/repositories/flights"
	"github.com/firflight/firflight/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	bcryptCost = bcrypt.MinCost
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	err     error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.byEmail == nil {
		f.byEmail = map[string]*models.User{}
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	u.CreatedAt = time.Now()
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakeFlightsRepo struct {
	flights   map[string]*models.Flight
	searchErr error

	gotFrom, gotTo time.Time
}

func (f *fakeFlightsRepo) Search(ctx context.Context, origin, destination string, from, to time.Time) ([]models.Flight, error) {
	f.gotFrom, f.gotTo = from, to
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []models.Flight
	for _, fl := range f.flights {
		if fl.Origin == origin && fl.Destination == destination {
			out = append(out, *fl)
		}
	}
	return out, nil
}

func (f *fakeFlightsRepo) Get(ctx context.Context, id string) (*models.Flight, error) {
	fl, ok := f.flights[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *fl
	return &cp, nil
}

func (f *fakeFlightsRepo) Reserve(ctx context.Context, id string, seats int) (int, error) {
	fl, ok := f.flights[id]
	if !ok {
		return 0, common.ErrNotFound
	}
	if fl.SeatsLeft < seats {
		return 0, common.ErrSoldOut
	}
	fl.SeatsLeft -= seats
	return fl.SeatsLeft, nil
}

type fakeBookingsRepo struct {
	bookings  map[string]*models.Booking
	createErr error
}

func (f *fakeBookingsRepo) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.bookings == nil {
		f.bookings = map[string]*models.Booking{}
	}
	b.CreatedAt = time.Now()
	f.bookings[b.ID] = b
	return b, nil
}

func (f *fakeBookingsRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingsRepo) Get(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return b, nil
}

type fakeEventsRepo struct {
	created []*models.Event
	failAt  int
	err     error
}

func (f *fakeEventsRepo) Create(ctx context.Context, e *models.Event) error {
	if f.err != nil && len(f.created) == f.failAt {
		return f.err
	}
	f.created = append(f.created, e)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	f *fakeFlightsRepo
	b *fakeBookingsRepo
	e *fakeEventsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: &fakeUsersRepo{},
		f: &fakeFlightsRepo{flights: map[string]*models.Flight{}},
		b: &fakeBookingsRepo{},
		e: &fakeEventsRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.u }
func (m *fakeRepoManager) Flights(dbx.DBTX) flights.Repository          { return m.f }
func (m *fakeRepoManager) Bookings(dbx.DBTX) bookings.Repository        { return m.b }
func (m *fakeRepoManager) Events(dbx.DBTX) events.Repository            { return m.e }
