package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/firflight/firflight/internal/client/client"
	"github.com/firflight/firflight/internal/client/models"
	"github.com/firflight/firflight/internal/client/repositories/bookings"
	"github.com/firflight/firflight/internal/client/repositories/flights"
	"github.com/firflight/firflight/internal/client/store"
	"github.com/firflight/firflight/internal/common"
	"github.com/firflight/firflight/internal/dbx"
	"github.com/firflight/firflight/internal/filex"
	"github.com/firflight/firflight/internal/logging"
)

// FlightService searches and books flights. Read operations fall back to the
// local cache when the server is unreachable; the returned offline flag tells
// the caller which source answered.
type FlightService struct {
	client    client.Client
	db        *sql.DB
	ticketDir string
	logger    logging.Logger
}

func NewFlightService(c client.Client, db *sql.DB, ticketDir string, logger logging.Logger) *FlightService {
	return &FlightService{client: c, db: db, ticketDir: ticketDir, logger: logger.With("module", "flights")}
}

func (s *FlightService) Search(ctx context.Context, from, to string, day time.Time) ([]models.Flight, bool, error) {
	from, to = strings.ToUpper(strings.TrimSpace(from)), strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return nil, false, fmt.Errorf("%w: origin and destination are required", common.ErrValidation)
	}
	if from == to {
		return nil, false, fmt.Errorf("%w: origin and destination must differ", common.ErrValidation)
	}

	fs, err := s.client.SearchFlights(ctx, from, to, day)
	if errors.Is(err, client.ErrUnavailable) {
		s.logger.Warn(ctx, "server unavailable, using cached flights", "from", from, "to", to)
		cached, err := flights.NewSQLiteRepository(s.db).Search(ctx, from, to, day)
		return cached, true, err
	}
	if err != nil {
		return nil, false, err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return flights.NewSQLiteRepository(tx).ReplaceRoute(ctx, from, to, day, fs)
	})
	if err != nil {
		s.logger.Warn(ctx, "failed to cache flights", "error", err)
	}
	return fs, false, nil
}

func (s *FlightService) Get(ctx context.Context, id string) (*models.Flight, bool, error) {
	f, err := s.client.GetFlight(ctx, id)
	if errors.Is(err, client.ErrUnavailable) {
		cached, err := flights.NewSQLiteRepository(s.db).Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil, true, common.ErrNotFound
		}
		if err != nil {
			return nil, true, err
		}
		return &cached, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	if err := flights.NewSQLiteRepository(s.db).Save(ctx, *f); err != nil {
		s.logger.Warn(ctx, "failed to cache flight", "id", id, "error", err)
	}
	return f, false, nil
}

func (s *FlightService) Book(ctx context.Context, flightID string, seats int) (*models.Booking, error) {
	if seats < 1 {
		return nil, fmt.Errorf("%w: seats must be at least 1", common.ErrValidation)
	}

	b, err := s.client.Book(ctx, flightID, seats)
	if err != nil {
		return nil, err
	}

	if err := bookings.NewSQLiteRepository(s.db).Save(ctx, *b); err != nil {
		s.logger.Warn(ctx, "failed to cache booking", "id", b.ID, "error", err)
	}
	s.logger.Info(ctx, "flight booked", "booking_id", b.ID, "flight_id", flightID, "seats", seats)
	return b, nil
}

func (s *FlightService) Bookings(ctx context.Context) ([]models.Booking, bool, error) {
	bs, err := s.client.ListBookings(ctx)
	if errors.Is(err, client.ErrUnavailable) {
		cached, err := bookings.NewSQLiteRepository(s.db).List(ctx)
		return cached, true, err
	}
	if err != nil {
		return nil, false, err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return bookings.NewSQLiteRepository(tx).ReplaceAll(ctx, bs)
	})
	if err != nil {
		s.logger.Warn(ctx, "failed to cache bookings", "error", err)
	}
	return bs, false, nil
}

// DownloadTicket fetches the ticket of a booking into the ticket directory
// and returns the file path.
func (s *FlightService) DownloadTicket(ctx context.Context, bookingID string) (string, error) {
	if bookingID == "" || strings.ContainsAny(bookingID, `/\.`) {
		return "", fmt.Errorf("%w: invalid booking id %q", common.ErrValidation, bookingID)
	}

	url, err := s.client.TicketURL(ctx, bookingID)
	if err != nil {
		return "", err
	}

	path, err := filex.WriteAtomic(s.ticketDir, "ticket-"+bookingID+".pdf", func(w io.Writer) error {
		return s.client.Download(ctx, url, w)
	})
	if err != nil {
		return "", fmt.Errorf("download ticket: %w", err)
	}
	return path, nil
}
