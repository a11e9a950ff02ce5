package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/firflight/firflight/internal/api"
	"github.com/firflight/firflight/internal/common"
	"github.com/firflight/firflight/internal/server/models"
	"github.com/firflight/firflight/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if !isClientError(err) {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, err)
}

func userToAPI(u *models.User) api.User {
	return api.User{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt.UTC()}
}

func flightToAPI(f models.Flight) api.Flight {
	return api.Flight{
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

func bookingToAPI(b models.Booking) api.Booking {
	return api.Booking{
		ID:           b.ID,
		FlightID:     b.FlightID,
		FlightNumber: b.FlightNumber,
		Seats:        b.Seats,
		Status:       string(b.Status),
		HasTicket:    b.TicketKey != "" && b.Status == models.BookingConfirmed,
		CreatedAt:    b.CreatedAt.UTC(),
	}
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var req api.SignInRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	sess, err := s.users.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.SignInResponse{
		AccessToken: sess.AccessToken,
		ExpiresAt:   sess.ExpiresAt.UTC(),
		User:        userToAPI(sess.User),
	})
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var req api.SignUpRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	u, err := s.users.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, userToAPI(u))
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.Get(r.Context(), UserID(r.Context()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToAPI(u))
}

func (s *Server) searchFlights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var day time.Time
	if d := q.Get("date"); d != "" {
		parsed, err := time.Parse(time.DateOnly, d)
		if err != nil {
			s.fail(w, r, fmt.Errorf("%w: date must be YYYY-MM-DD", common.ErrValidation))
			return
		}
		day = parsed
	}

	fs, err := s.flights.Search(r.Context(), q.Get("from"), q.Get("to"), day)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out := make([]api.Flight, 0, len(fs))
	for _, f := range fs {
		out = append(out, flightToAPI(f))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getFlight(w http.ResponseWriter, r *http.Request) {
	f, err := s.flights.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, flightToAPI(*f))
}

func (s *Server) book(w http.ResponseWriter, r *http.Request) {
	var req api.BookRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	b, err := s.bookings.Book(r.Context(), UserID(r.Context()), req.FlightID, req.Seats)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bookingToAPI(*b))
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	bs, err := s.bookings.List(r.Context(), UserID(r.Context()))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out := make([]api.Booking, 0, len(bs))
	for _, b := range bs {
		out = append(out, bookingToAPI(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) ticket(w http.ResponseWriter, r *http.Request) {
	url, expires, err := s.bookings.TicketURL(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.TicketResponse{URL: url, ExpiresAt: expires.UTC()})
}

func (s *Server) recordEvents(w http.ResponseWriter, r *http.Request) {
	var req api.EventsRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	in := make([]services.EventInput, 0, len(req.Events))
	for _, e := range req.Events {
		in = append(in, services.EventInput{Name: e.Name, Attributes: e.Attributes, OccurredAt: e.OccurredAt})
	}

	if _, err := s.events.Record(r.Context(), UserID(r.Context()), in); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
