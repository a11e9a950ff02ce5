package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/firflight/firflight/internal/client/client"
	"github.com/firflight/firflight/internal/client/models"
	"github.com/firflight/firflight/internal/client/repositories/bookings"
	"github.com/firflight/firflight/internal/client/repositories/flights"
	"github.com/firflight/firflight/internal/common"
	"github.com/firflight/firflight/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC)

func rixLhr(id string, hour int) models.Flight {
	dep := day.Add(time.Duration(hour) * time.Hour)
	return models.Flight{
		ID: id, Number: "FF" + id, Airline: "FirAir", Origin: "RIX", Destination: "LHR",
		DepartsAt: dep, ArrivesAt: dep.Add(3 * time.Hour), PriceCents: 9900, Currency: "EUR", SeatsLeft: 4,
	}
}

func TestSearch_OnlineCachesResults(t *testing.T) {
	s := openStore(t)
	fc := &fakeClient{flights: []models.Flight{rixLhr("1", 7), rixLhr("2", 19)}}
	svc := NewFlightService(fc, s.DB(), t.TempDir(), logging.Discard())
	ctx := context.Background()

	fs, offline, err := svc.Search(ctx, "rix", "lhr", day)
	require.NoError(t, err)
	assert.False(t, offline)
	assert.Len(t, fs, 2)

	cached, err := flights.NewSQLiteRepository(s.DB()).Search(ctx, "RIX", "LHR", day)
	require.NoError(t, err)
	assert.Equal(t, fs, cached)
}

func TestSearch_OfflineFallsBackToCache(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, flights.NewSQLiteRepository(s.DB()).Save(ctx, rixLhr("1", 7)))

	fc := &fakeClient{searchErr: &client.NetworkError{Err: os.ErrDeadlineExceeded}}
	svc := NewFlightService(fc, s.DB(), t.TempDir(), logging.Discard())

	fs, offline, err := svc.Search(ctx, "RIX", "LHR", day)
	require.NoError(t, err)
	assert.True(t, offline)
	require.Len(t, fs, 1)
	assert.Equal(t, "1", fs[0].ID)
}

func TestSearch_OtherErrorsPropagate(t *testing.T) {
	s := openStore(t)
	remote := &client.HTTPError{Code: 400, Message: "unknown airport"}
	svc := NewFlightService(&fakeClient{searchErr: remote}, s.DB(), t.TempDir(), logging.Discard())

	_, _, err := svc.Search(context.Background(), "RIX", "XXX", day)
	assert.ErrorIs(t, err, remote)
}

func TestSearch_Validation(t *testing.T) {
	svc := NewFlightService(&fakeClient{}, openStore(t).DB(), t.TempDir(), logging.Discard())

	_, _, err := svc.Search(context.Background(), "", "LHR", day)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, _, err = svc.Search(context.Background(), "rix", "RIX", day)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestGet_OnlineAndOffline(t *testing.T) {
	s := openStore(t)
	f := rixLhr("1", 7)
	fc := &fakeClient{flight: &f}
	svc := NewFlightService(fc, s.DB(), t.TempDir(), logging.Discard())
	ctx := context.Background()

	got, offline, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.False(t, offline)
	assert.Equal(t, f, *got)

	fc.flightErr = client.ErrUnavailable
	got, offline, err = svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.True(t, offline)
	assert.Equal(t, f, *got)

	_, _, err = svc.Get(ctx, "2")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestBook(t *testing.T) {
	s := openStore(t)
	b := &models.Booking{ID: "b1", FlightID: "1", Seats: 2, Status: models.BookingConfirmed, CreatedAt: day}
	svc := NewFlightService(&fakeClient{booking: b}, s.DB(), t.TempDir(), logging.Discard())
	ctx := context.Background()

	_, err := svc.Book(ctx, "1", 0)
	assert.ErrorIs(t, err, common.ErrValidation)

	got, err := svc.Book(ctx, "1", 2)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	cached, err := bookings.NewSQLiteRepository(s.DB()).Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, *b, cached)
}

func TestBookings_RefreshAndOffline(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, bookings.NewSQLiteRepository(s.DB()).Save(ctx, models.Booking{ID: "gone", FlightID: "x", Seats: 1, Status: models.BookingConfirmed}))

	fresh := []models.Booking{{ID: "b1", FlightID: "1", Seats: 1, Status: models.BookingConfirmed, CreatedAt: day}}
	fc := &fakeClient{bookings: fresh}
	svc := NewFlightService(fc, s.DB(), t.TempDir(), logging.Discard())

	bs, offline, err := svc.Bookings(ctx)
	require.NoError(t, err)
	assert.False(t, offline)
	assert.Equal(t, fresh, bs)

	fc.bookingsErr = &client.HTTPError{Code: 503, Message: "maintenance"}
	bs, offline, err = svc.Bookings(ctx)
	require.NoError(t, err)
	assert.True(t, offline)
	assert.Equal(t, fresh, bs)
}

func TestDownloadTicket(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tickets")
	fc := &fakeClient{ticketURL: "https://s3.local/b1.pdf", body: "%PDF"}
	svc := NewFlightService(fc, openStore(t).DB(), dir, logging.Discard())

	path, err := svc.DownloadTicket(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ticket-b1.pdf"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b))
}

func TestDownloadTicket_Errors(t *testing.T) {
	dir := t.TempDir()
	fc := &fakeClient{ticketURL: "https://s3.local/b1.pdf", dlErr: &client.HTTPError{Code: 403, Message: "expired"}}
	svc := NewFlightService(fc, openStore(t).DB(), dir, logging.Discard())
	ctx := context.Background()

	_, err := svc.DownloadTicket(ctx, "../etc")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.DownloadTicket(ctx, "b1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
