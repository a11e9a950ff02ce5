package client

import (
	"github.com/firflight/firflight/internal/api"
	"github.com/firflight/firflight/internal/client/models"
)

func userFromAPI(u api.User) *models.User {
	return &models.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

func flightFromAPI(f api.Flight) models.Flight {
	return models.Flight{
		ID:          f.ID,
		Number:      f.Number,
		Airline:     f.Airline,
		Origin:      f.Origin,
		Destination: f.Destination,
		DepartsAt:   f.DepartsAt.UTC(),
		ArrivesAt:   f.ArrivesAt.UTC(),
		PriceCents:  f.PriceCents,
		Currency:    f.Currency,
		SeatsLeft:   f.SeatsLeft,
		Aircraft:    f.Aircraft,
	}
}

func bookingFromAPI(b api.Booking) models.Booking {
	return models.Booking{
		ID:           b.ID,
		FlightID:     b.FlightID,
		FlightNumber: b.FlightNumber,
		Seats:        b.Seats,
		Status:       models.BookingStatus(b.Status),
		HasTicket:    b.HasTicket,
		CreatedAt:    b.CreatedAt.UTC(),
	}
}
