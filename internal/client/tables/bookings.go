package tables

import (
	"fmt"

	"github.com/firflight/firflight/internal/client/models"
)

// BookingTable stores the user's bookings.
type BookingTable struct{}

// Bookings is the booking table.
var Bookings Table[models.Booking] = BookingTable{}

func (BookingTable) Name() string { return "bookings" }

func (BookingTable) CreateTable() string {
	return `CREATE TABLE IF NOT EXISTS bookings (
	id            TEXT PRIMARY KEY,
	flight_id     TEXT NOT NULL,
	flight_number TEXT,
	seats         INTEGER NOT NULL,
	status        TEXT NOT NULL,
	has_ticket    INTEGER NOT NULL DEFAULT 0,
	created_at    TEXT NOT NULL
)`
}

func (BookingTable) DeleteTable() string { return `DROP TABLE IF EXISTS bookings` }

// ToRow stores HasTicket as 0/1 and an empty flight number as NULL.
func (BookingTable) ToRow(b models.Booking) Row {
	return Row{
		"id":            b.ID,
		"flight_id":     b.FlightID,
		"flight_number": OptText(b.FlightNumber),
		"seats":         int64(b.Seats),
		"status":        string(b.Status),
		"has_ticket":    Flag(b.HasTicket),
		"created_at":    Stamp(b.CreatedAt),
	}
}

// FromRow rejects statuses other than confirmed and cancelled.
func (BookingTable) FromRow(r Row) (models.Booking, error) {
	rr := rowReader{row: r}
	b := models.Booking{
		ID:           rr.str("id"),
		FlightID:     rr.str("flight_id"),
		FlightNumber: rr.optStr("flight_number"),
		Seats:        int(rr.int64("seats")),
		Status:       models.BookingStatus(rr.str("status")),
		HasTicket:    rr.optBool("has_ticket"),
		CreatedAt:    rr.time("created_at"),
	}
	if rr.err != nil {
		return models.Booking{}, rr.err
	}
	switch b.Status {
	case models.BookingConfirmed, models.BookingCancelled:
	default:
		return models.Booking{}, fmt.Errorf("%w: unknown booking status %q", ErrMalformedRow, b.Status)
	}
	return b, nil
}
