package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/firflight/firflight/internal/common"
	"github.com/firflight/firflight/internal/logging"
	"github.com/firflight/firflight/internal/server/models"
	"github.com/firflight/firflight/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type UserService interface {
	SignUp(ctx context.Context, email, password, name string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*services.Session, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Authenticate(token string) (string, error)
}

type FlightService interface {
	Search(ctx context.Context, origin, destination string, day time.Time) ([]models.Flight, error)
	Get(ctx context.Context, id string) (*models.Flight, error)
}

type BookingService interface {
	Book(ctx context.Context, userID, flightID string, seats int) (*models.Booking, error)
	List(ctx context.Context, userID string) ([]models.Booking, error)
	TicketURL(ctx context.Context, userID, bookingID string) (string, time.Time, error)
}

type EventService interface {
	Record(ctx context.Context, userID string, in []services.EventInput) (int, error)
}

type Server struct {
	address  string
	users    UserService
	flights  FlightService
	bookings BookingService
	events   EventService
	limiter  *ipLimiter
	logger   logging.Logger
}

func NewServer(address string, l logging.Logger, us UserService, fs FlightService, bs BookingService, es EventService, signInPerMinute int) *Server {
	return &Server{
		address:  address,
		users:    us,
		flights:  fs,
		bookings: bs,
		events:   es,
		limiter:  newIPLimiter(signInPerMinute),
		logger:   l.With("module", "http_server"),
	}
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route(common.APIPrefix, func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.rateLimit)
			r.Post("/auth/sign_in", s.signIn)
			r.Post("/auth/sign_up", s.signUp)
		})

		r.Get("/flights", s.searchFlights)
		r.Get("/flights/{id}", s.getFlight)

		r.With(s.optionalAuth).Post("/events", s.recordEvents)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/user", s.me)
			r.Post("/bookings", s.book)
			r.Get("/bookings", s.listBookings)
			r.Get("/bookings/{id}/ticket", s.ticket)
		})
	})

	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.limiter.run(sweepCtx, limiterSweepInterval)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
