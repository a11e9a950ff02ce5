package flights

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/firflight/firflight/internal/client/models"
	"github.com/firflight/firflight/internal/client/store"
	"github.com/firflight/firflight/internal/client/tables"
	"github.com/firflight/firflight/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "flights.db"), logging.Discard(), tables.Flights)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewSQLiteRepository(s.DB())
}

func mkFlight(id, from, to string, departs time.Time) models.Flight {
	return models.Flight{
		ID: id, Number: "FF" + id, Airline: "FirAir",
		Origin: from, Destination: to,
		DepartsAt: departs, ArrivesAt: departs.Add(3 * time.Hour),
		PriceCents: 12000, Currency: "EUR", SeatsLeft: 5,
	}
}

var (
	day1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	day2 = day1.AddDate(0, 0, 1)
)

func TestSearch_ByRouteAndDay(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, mkFlight("3", "RIX", "LHR", day1.Add(18*time.Hour))))
	require.NoError(t, r.Save(ctx, mkFlight("1", "RIX", "LHR", day1.Add(7*time.Hour))))
	require.NoError(t, r.Save(ctx, mkFlight("2", "RIX", "LHR", day2.Add(7*time.Hour))))
	require.NoError(t, r.Save(ctx, mkFlight("4", "LHR", "RIX", day1.Add(9*time.Hour))))

	fs, err := r.Search(ctx, "rix", "lhr", day1)
	require.NoError(t, err)
	require.Len(t, fs, 2)
	assert.Equal(t, "1", fs[0].ID)
	assert.Equal(t, "3", fs[1].ID)

	fs, err = r.Search(ctx, "RIX", "LHR", time.Time{})
	require.NoError(t, err)
	assert.Len(t, fs, 3)
}

func TestSearch_DayEdgesKeepNanoseconds(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	last := mkFlight("late", "RIX", "LHR", day2.Add(-time.Nanosecond))
	first := mkFlight("early", "RIX", "LHR", day2)
	require.NoError(t, r.Save(ctx, last))
	require.NoError(t, r.Save(ctx, first))

	fs, err := r.Search(ctx, "RIX", "LHR", day1)
	require.NoError(t, err)
	require.Len(t, fs, 1)
	assert.Equal(t, last, fs[0])

	fs, err = r.Search(ctx, "RIX", "LHR", day2)
	require.NoError(t, err)
	require.Len(t, fs, 1)
	assert.Equal(t, first, fs[0])
}

func TestReplaceRoute(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, mkFlight("1", "RIX", "LHR", day1.Add(7*time.Hour))))
	require.NoError(t, r.Save(ctx, mkFlight("2", "RIX", "LHR", day2.Add(7*time.Hour))))
	require.NoError(t, r.Save(ctx, mkFlight("9", "RIX", "PEK", day1.Add(7*time.Hour))))

	fresh := mkFlight("5", "RIX", "LHR", day1.Add(12*time.Hour))
	require.NoError(t, r.ReplaceRoute(ctx, "RIX", "LHR", day1, []models.Flight{fresh}))

	fs, err := r.Search(ctx, "RIX", "LHR", time.Time{})
	require.NoError(t, err)
	require.Len(t, fs, 2)
	assert.Equal(t, "5", fs[0].ID)
	assert.Equal(t, "2", fs[1].ID)

	other, err := r.Search(ctx, "RIX", "PEK", time.Time{})
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestGet(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	want := mkFlight("1", "RIX", "LHR", day1.Add(7*time.Hour))
	require.NoError(t, r.Save(ctx, want))

	got, err := r.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = r.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
