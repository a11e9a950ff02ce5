// Package api defines the JSON bodies exchanged between the firflight client
// and server over HTTP.
package api

import "time"

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type SignInResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Flight struct {
	ID          string    `json:"id"`
	Number      string    `json:"number"`
	Airline     string    `json:"airline"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DepartsAt   time.Time `json:"departs_at"`
	ArrivesAt   time.Time `json:"arrives_at"`
	PriceCents  int64     `json:"price_cents"`
	Currency    string    `json:"currency"`
	SeatsLeft   int       `json:"seats_left"`
	Aircraft    string    `json:"aircraft,omitempty"`
}

type BookRequest struct {
	FlightID string `json:"flight_id"`
	Seats    int    `json:"seats"`
}

type Booking struct {
	ID           string    `json:"id"`
	FlightID     string    `json:"flight_id"`
	FlightNumber string    `json:"flight_number,omitempty"`
	Seats        int       `json:"seats"`
	Status       string    `json:"status"`
	HasTicket    bool      `json:"has_ticket"`
	CreatedAt    time.Time `json:"created_at"`
}

type TicketResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Event struct {
	Name       string         `json:"name"`
	Attributes map[string]any `json:"attributes,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type EventsRequest struct {
	Events []Event `json:"events"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Message string `json:"message"`
}
