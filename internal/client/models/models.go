// Package models defines the client-side records kept in the local database.
package models

import "time"

// User is the signed-in account as returned by the API.
type User struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
	CreatedAt time.Time
}

// Flight is a scheduled flight. Times are UTC; prices are in minor units.
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

// Booking is a reservation of one or more seats on a flight.
type Booking struct {
	ID           string
	FlightID     string
	FlightNumber string
	Seats        int
	Status       BookingStatus
	HasTicket    bool
	CreatedAt    time.Time
}

// MetadataItem is a local key/value setting such as the access token.
type MetadataItem struct {
	Key   string
	Value []byte
}

// QueuedEvent is an analytics event waiting to be uploaded.
type QueuedEvent struct {
	ID         string
	Name       string
	Attributes map[string]any
	CreatedAt  time.Time
}
