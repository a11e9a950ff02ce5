package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/firflight/firflight/internal/common"
	"github.com/firflight/firflight/internal/dbx"
	"github.com/firflight/firflight/internal/server/models"
	"github.com/firflight/firflight/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// MaxSeatsPerBooking caps a single booking.
const MaxSeatsPerBooking = 9

// Presigner issues temporary download links for stored objects.
type Presigner interface {
	PresignGet(ctx context.Context, key string) (string, time.Time, error)
}

type BookingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tickets     Presigner
	now         func() time.Time
}

func NewBookingService(db *sql.DB, m repomanager.RepositoryManager, tickets Presigner) *BookingService {
	return &BookingService{db: db, repomanager: m, tickets: tickets, now: time.Now}
}

// Book reserves seats on a flight for userID. Seat inventory and the
// booking row change in one transaction; common.ErrSoldOut means nothing
// was reserved.
func (s *BookingService) Book(ctx context.Context, userID, flightID string, seats int) (*models.Booking, error) {
	if seats < 1 || seats > MaxSeatsPerBooking {
		return nil, fmt.Errorf("%w: seats must be between 1 and %d", common.ErrValidation, MaxSeatsPerBooking)
	}
	if _, err := uuid.Parse(flightID); err != nil {
		return nil, common.ErrNotFound
	}

	return dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Booking, error) {
		flight, err := s.repomanager.Flights(tx).Get(ctx, flightID)
		if err != nil {
			return nil, err
		}

		if _, err := s.repomanager.Flights(tx).Reserve(ctx, flightID, seats); err != nil {
			return nil, err
		}

		id := uuid.NewString()
		b := &models.Booking{
			ID:           id,
			UserID:       userID,
			FlightID:     flightID,
			FlightNumber: flight.Number,
			Seats:        seats,
			Status:       models.BookingConfirmed,
			TicketKey:    TicketKey(id, s.now().UTC()),
		}
		return s.repomanager.Bookings(tx).Create(ctx, b)
	})
}

func (s *BookingService) List(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.repomanager.Bookings(s.db).ListByUser(ctx, userID)
}

// TicketURL returns a presigned link to the ticket of the user's booking.
// Bookings of other users are reported as not found.
func (s *BookingService) TicketURL(ctx context.Context, userID, bookingID string) (string, time.Time, error) {
	if _, err := uuid.Parse(bookingID); err != nil {
		return "", time.Time{}, common.ErrNotFound
	}

	b, err := s.repomanager.Bookings(s.db).Get(ctx, bookingID)
	if err != nil {
		return "", time.Time{}, err
	}
	if b.UserID != userID || b.TicketKey == "" || b.Status != models.BookingConfirmed {
		return "", time.Time{}, common.ErrNotFound
	}

	url, expires, err := s.tickets.PresignGet(ctx, b.TicketKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("presign ticket: %w", err)
	}
	return url, expires, nil
}
