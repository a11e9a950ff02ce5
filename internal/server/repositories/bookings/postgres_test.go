package bookings

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/firflight/firflight/internal/common"
	"github.com/firflight/firflight/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cols = []string{"id", "user_id", "flight_id", "number", "seats", "status", "ticket_key", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)^INSERT INTO bookings \(id, user_id, flight_id, seats, status, ticket_key\)\s+VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)\s+RETURNING created_at$`).
		WithArgs("b1", "u1", "f1", 2, "confirmed", "tickets/b1.pdf").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	got, err := repo.Create(context.Background(), &models.Booking{
		ID: "b1", UserID: "u1", FlightID: "f1", Seats: 2, Status: models.BookingConfirmed, TicketKey: "tickets/b1.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, created, got.CreatedAt)

	mock.ExpectQuery(`INSERT INTO bookings`).WillReturnError(errors.New("fk violation"))
	_, err = repo.Create(context.Background(), &models.Booking{ID: "b2"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	t1 := time.Date(2024, 8, 2, 9, 0, 0, 0, time.UTC)
	t0 := t1.Add(-time.Hour)

	mock.ExpectQuery(`(?s)FROM bookings b JOIN flights f ON f.id = b.flight_id WHERE b.user_id = \$1 ORDER BY b.created_at DESC, b.id`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("b2", "u1", "f2", "FF102", 1, "confirmed", "", t1).
			AddRow("b1", "u1", "f1", "FF101", 2, "cancelled", "tickets/b1.pdf", t0))

	got, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.Booking{ID: "b2", UserID: "u1", FlightID: "f2", FlightNumber: "FF102", Seats: 1, Status: models.BookingConfirmed, CreatedAt: t1}, got[0])
	assert.Equal(t, models.BookingCancelled, got[1].Status)
	assert.Equal(t, "tickets/b1.pdf", got[1].TicketKey)
}

func TestListByUser_Error(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM bookings`).WillReturnError(errors.New("boom"))
	_, err := repo.ListByUser(context.Background(), "u1")
	require.Error(t, err)
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2024, 8, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE b.id = \$1$`).WithArgs("b1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("b1", "u1", "f1", "FF101", 2, "confirmed", "tickets/b1.pdf", created))

	got, err := repo.Get(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "FF101", got.FlightNumber)
	assert.Equal(t, 2, got.Seats)

	mock.ExpectQuery(`WHERE b.id = \$1$`).WithArgs("nope").WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrNotFound)
}
