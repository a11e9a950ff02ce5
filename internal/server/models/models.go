// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account. PasswordHash is a bcrypt hash and never leaves the
// server.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Flight is a scheduled flight with the number of seats still for sale.
type Flight struct {
	ID          string
	Number      string
	Airline     string
	Origin      string
	Destination string
	DepartsAt   time.Time
	ArrivesAt   time.Time
	PriceCents  int64
	Currency    string
	SeatsLeft   int
	Aircraft    string
}

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking reserves Seats on a flight for a user. TicketKey is the object
// storage key of the ticket document; empty until one is issued.
type Booking struct {
	ID           string
	UserID       string
	FlightID     string
	FlightNumber string
	Seats        int
	Status       BookingStatus
	TicketKey    string
	CreatedAt    time.Time
}

// Event is an analytics event uploaded by a client. Attributes holds the
// raw JSON object.
type Event struct {
	ID         string
	UserID     string
	Name       string
	Attributes []byte
	OccurredAt time.Time
	ReceivedAt time.Time
}
