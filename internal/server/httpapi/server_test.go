package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/firflight/firflight/internal/api"
	"github.com/firflight/firflight/internal/common"
	"github.com/firflight/firflight/internal/logging"
	"github.com/firflight/firflight/internal/server/models"
	"github.com/firflight/firflight/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validToken = "good-token"

var created = time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)

type fakeUsers struct {
	signInErr error
	signUpErr error
}

func (f *fakeUsers) SignUp(ctx context.Context, email, password, name string) (*models.User, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &models.User{ID: "u-new", Email: email, Name: name, CreatedAt: created}, nil
}

func (f *fakeUsers) SignIn(ctx context.Context, email, password string) (*services.Session, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &services.Session{
		AccessToken: validToken,
		ExpiresAt:   created.Add(time.Hour),
		User:        &models.User{ID: "u1", Email: email, CreatedAt: created},
	}, nil
}

func (f *fakeUsers) Get(ctx context.Context, id string) (*models.User, error) {
	return &models.User{ID: id, Email: "a@b.co", Name: "Ann", CreatedAt: created}, nil
}

func (f *fakeUsers) Authenticate(token string) (string, error) {
	if token == validToken {
		return "u1", nil
	}
	return "", common.ErrInvalidToken
}

type fakeFlights struct {
	gotDay time.Time
	err    error
}

func (f *fakeFlights) Search(ctx context.Context, origin, destination string, day time.Time) ([]models.Flight, error) {
	f.gotDay = day
	if f.err != nil {
		return nil, f.err
	}
	return []models.Flight{{ID: "f1", Number: "FF101", Origin: origin, Destination: destination, DepartsAt: created, ArrivesAt: created.Add(time.Hour), PriceCents: 100, Currency: "EUR", SeatsLeft: 3}}, nil
}

func (f *fakeFlights) Get(ctx context.Context, id string) (*models.Flight, error) {
	if id != "f1" {
		return nil, common.ErrNotFound
	}
	return &models.Flight{ID: "f1", Number: "FF101"}, nil
}

type fakeBookings struct {
	bookErr error
	gotUser string
}

func (f *fakeBookings) Book(ctx context.Context, userID, flightID string, seats int) (*models.Booking, error) {
	f.gotUser = userID
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	return &models.Booking{ID: "b1", UserID: userID, FlightID: flightID, FlightNumber: "FF101", Seats: seats, Status: models.BookingConfirmed, TicketKey: "k", CreatedAt: created}, nil
}

func (f *fakeBookings) List(ctx context.Context, userID string) ([]models.Booking, error) {
	f.gotUser = userID
	return []models.Booking{{ID: "b1", FlightID: "f1", Seats: 1, Status: models.BookingCancelled, TicketKey: "k", CreatedAt: created}}, nil
}

func (f *fakeBookings) TicketURL(ctx context.Context, userID, bookingID string) (string, time.Time, error) {
	if bookingID != "b1" {
		return "", time.Time{}, common.ErrNotFound
	}
	return "https://s3.example/t.pdf", created, nil
}

type fakeEvents struct {
	gotUser string
	got     []services.EventInput
	err     error
}

func (f *fakeEvents) Record(ctx context.Context, userID string, in []services.EventInput) (int, error) {
	f.gotUser, f.got = userID, in
	return len(in), f.err
}

type fixture struct {
	srv      *httptest.Server
	users    *fakeUsers
	flights  *fakeFlights
	bookings *fakeBookings
	events   *fakeEvents
}

func newFixture(t *testing.T, rateLimit int) *fixture {
	t.Helper()
	f := &fixture{users: &fakeUsers{}, flights: &fakeFlights{}, bookings: &fakeBookings{}, events: &fakeEvents{}}
	s := NewServer(":0", logging.Discard(), f.users, f.flights, f.bookings, f.events, rateLimit)
	f.srv = httptest.NewServer(s.Router())
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, f.srv.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealthz(t *testing.T) {
	f := newFixture(t, 0)
	resp := f.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSignIn(t *testing.T) {
	f := newFixture(t, 0)

	resp := f.do(t, http.MethodPost, "/api/v1/auth/sign_in", "", api.SignInRequest{Email: "a@b.co", Password: "pw"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[api.SignInResponse](t, resp)
	assert.Equal(t, validToken, body.AccessToken)
	assert.Equal(t, "a@b.co", body.User.Email)
	assert.Equal(t, created.Add(time.Hour), body.ExpiresAt)
}

func TestSignIn_Errors(t *testing.T) {
	f := newFixture(t, 0)

	f.users.signInErr = common.ErrUnauthorized
	resp := f.do(t, http.MethodPost, "/api/v1/auth/sign_in", "", api.SignInRequest{Email: "a@b.co", Password: "bad"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid email or password", decodeBody[api.Error](t, resp).Message)

	f.users.signInErr = errors.New("db exploded")
	resp = f.do(t, http.MethodPost, "/api/v1/auth/sign_in", "", api.SignInRequest{Email: "a@b.co", Password: "pw"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal error", decodeBody[api.Error](t, resp).Message)

	resp = f.do(t, http.MethodPost, "/api/v1/auth/sign_in", "", "not an object")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSignUp(t *testing.T) {
	f := newFixture(t, 0)

	resp := f.do(t, http.MethodPost, "/api/v1/auth/sign_up", "", api.SignUpRequest{Email: "n@b.co", Password: "pw", Name: "Nia"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Nia", decodeBody[api.User](t, resp).Name)

	f.users.signUpErr = common.ErrAlreadyExists
	resp = f.do(t, http.MethodPost, "/api/v1/auth/sign_up", "", api.SignUpRequest{Email: "n@b.co", Password: "pw"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSignIn_RateLimited(t *testing.T) {
	f := newFixture(t, 2)
	req := api.SignInRequest{Email: "a@b.co", Password: "pw"}

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/v1/auth/sign_in", "", req).StatusCode)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/v1/auth/sign_in", "", req).StatusCode)

	resp := f.do(t, http.MethodPost, "/api/v1/auth/sign_in", "", req)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))

	// other routes are not limited
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/flights?from=RIX&to=LHR", "", nil).StatusCode)
}

func TestSearchFlights(t *testing.T) {
	f := newFixture(t, 0)

	resp := f.do(t, http.MethodGet, "/api/v1/flights?from=RIX&to=LHR&date=2024-08-10", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fs := decodeBody[[]api.Flight](t, resp)
	require.Len(t, fs, 1)
	assert.Equal(t, "RIX", fs[0].Origin)
	assert.Equal(t, time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC), f.flights.gotDay)

	resp = f.do(t, http.MethodGet, "/api/v1/flights?from=RIX&to=LHR&date=10.08.2024", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	f.flights.err = common.ErrValidation
	resp = f.do(t, http.MethodGet, "/api/v1/flights?from=R&to=LHR", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetFlight(t *testing.T) {
	f := newFixture(t, 0)

	resp := f.do(t, http.MethodGet, "/api/v1/flights/f1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "FF101", decodeBody[api.Flight](t, resp).Number)

	resp = f.do(t, http.MethodGet, "/api/v1/flights/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not found", decodeBody[api.Error](t, resp).Message)
}

func TestAuthRequired(t *testing.T) {
	f := newFixture(t, 0)

	for _, path := range []string{"/api/v1/user", "/api/v1/bookings", "/api/v1/bookings/b1/ticket"} {
		assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, path, "", nil).StatusCode, path)
		assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, path, "forged", nil).StatusCode, path)
	}
}

func TestMe(t *testing.T) {
	f := newFixture(t, 0)

	resp := f.do(t, http.MethodGet, "/api/v1/user", validToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u1", decodeBody[api.User](t, resp).ID)
}

func TestBook(t *testing.T) {
	f := newFixture(t, 0)

	resp := f.do(t, http.MethodPost, "/api/v1/bookings", validToken, api.BookRequest{FlightID: "f1", Seats: 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	b := decodeBody[api.Booking](t, resp)
	assert.Equal(t, "u1", f.bookings.gotUser)
	assert.Equal(t, 2, b.Seats)
	assert.Equal(t, "confirmed", b.Status)
	assert.True(t, b.HasTicket)

	f.bookings.bookErr = common.ErrSoldOut
	resp = f.do(t, http.MethodPost, "/api/v1/bookings", validToken, api.BookRequest{FlightID: "f1", Seats: 2})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, common.ErrSoldOut.Error(), decodeBody[api.Error](t, resp).Message)
}

func TestListBookingsAndTicket(t *testing.T) {
	f := newFixture(t, 0)

	resp := f.do(t, http.MethodGet, "/api/v1/bookings", validToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	bs := decodeBody[[]api.Booking](t, resp)
	require.Len(t, bs, 1)
	assert.False(t, bs[0].HasTicket)

	resp = f.do(t, http.MethodGet, "/api/v1/bookings/b1/ticket", validToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://s3.example/t.pdf", decodeBody[api.TicketResponse](t, resp).URL)

	resp = f.do(t, http.MethodGet, "/api/v1/bookings/b2/ticket", validToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecordEvents(t *testing.T) {
	f := newFixture(t, 0)
	body := api.EventsRequest{Events: []api.Event{{Name: "sign_in", Attributes: map[string]any{"success": true}, OccurredAt: created}}}

	resp := f.do(t, http.MethodPost, "/api/v1/events", "", body)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Empty(t, f.events.gotUser)
	require.Len(t, f.events.got, 1)
	assert.Equal(t, true, f.events.got[0].Attributes["success"])

	resp = f.do(t, http.MethodPost, "/api/v1/events", validToken, body)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "u1", f.events.gotUser)

	f.events.err = common.ErrValidation
	resp = f.do(t, http.MethodPost, "/api/v1/events", "", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	s := NewServer("127.0.0.1:0", logging.Discard(), &fakeUsers{}, &fakeFlights{}, &fakeBookings{}, &fakeEvents{}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_BadAddress(t *testing.T) {
	s := NewServer("127.0.0.1:99999", logging.Discard(), &fakeUsers{}, &fakeFlights{}, &fakeBookings{}, &fakeEvents{}, 0)
	require.Error(t, s.Run(context.Background()))
}
