package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/firflight/firflight/internal/api"
	"github.com/firflight/firflight/internal/client/analytics"
	"github.com/firflight/firflight/internal/client/models"
	"github.com/firflight/firflight/internal/i18n"
	"github.com/firflight/firflight/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	mu sync.Mutex

	signInErrs []error
	restored   *models.User
	current    *models.User
	signedOut  int
	signUps    []string
	pingErr    error
}

func (f *fakeSession) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.signInErrs) > 0 {
		err := f.signInErrs[0]
		f.signInErrs = f.signInErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	f.current = &models.User{ID: "u1", Email: email}
	return f.current, nil
}

func (f *fakeSession) SignUp(ctx context.Context, email, password, name string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUps = append(f.signUps, email+"/"+name)
	return &models.User{ID: "u2", Email: email, Name: name}, nil
}

func (f *fakeSession) Restore(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = f.restored
	return f.restored, nil
}

func (f *fakeSession) Current() *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeSession) SignOut(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signedOut++
	f.current = nil
	return nil
}

func (f *fakeSession) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

type fakeFlights struct {
	flights     []models.Flight
	offline     bool
	searchErr   error
	searchDay   time.Time
	booking     *models.Booking
	bookedSeats int
	bookings    []models.Booking
	bookingsErr error
	ticketPath  string
}

func (f *fakeFlights) Search(ctx context.Context, from, to string, day time.Time) ([]models.Flight, bool, error) {
	f.searchDay = day
	return f.flights, f.offline, f.searchErr
}

func (f *fakeFlights) Get(ctx context.Context, id string) (*models.Flight, bool, error) {
	for _, fl := range f.flights {
		if fl.ID == id {
			return &fl, f.offline, nil
		}
	}
	return nil, false, &notFound{id}
}

type notFound struct{ id string }

func (e *notFound) Error() string { return "flight " + e.id + " not found" }

func (f *fakeFlights) Book(ctx context.Context, flightID string, seats int) (*models.Booking, error) {
	f.bookedSeats = seats
	return f.booking, nil
}

func (f *fakeFlights) Bookings(ctx context.Context) ([]models.Booking, bool, error) {
	return f.bookings, f.offline, f.bookingsErr
}

func (f *fakeFlights) DownloadTicket(ctx context.Context, bookingID string) (string, error) {
	return f.ticketPath, nil
}

type fakeTracker struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (f *fakeTracker) Track(ctx context.Context, e analytics.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

type fakeQueue struct {
	flushed int
	err     error
}

func (f *fakeQueue) Flush(ctx context.Context, sender analytics.Sender) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.flushed++
	return 1, sender.SendEvents(ctx, nil)
}

type fakeSender struct{ calls int }

func (f *fakeSender) SendEvents(ctx context.Context, events []api.Event) error {
	f.calls++
	return nil
}

type testApp struct {
	*App
	session *fakeSession
	flights *fakeFlights
	tracker *fakeTracker
	out     *bytes.Buffer
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	oldTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = oldTerm })

	msgs, err := i18n.New("en")
	require.NoError(t, err)

	ta := &testApp{
		session: &fakeSession{},
		flights: &fakeFlights{},
		tracker: &fakeTracker{},
		out:     &bytes.Buffer{},
	}
	ta.App = &App{
		session: ta.session,
		flights: ta.flights,
		tracker: ta.tracker,
		msgs:    msgs,
		logger:  logging.Discard(),
		in:      bufio.NewReader(strings.NewReader(input)),
		out:     &lockedWriter{w: ta.out},
		mode:    ModeOnline,
	}
	return ta
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}
