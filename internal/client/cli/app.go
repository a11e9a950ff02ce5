package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/firflight/firflight/internal/client/analytics"
	"github.com/firflight/firflight/internal/client/client"
	"github.com/firflight/firflight/internal/client/config"
	"github.com/firflight/firflight/internal/client/models"
	"github.com/firflight/firflight/internal/client/services"
	"github.com/firflight/firflight/internal/client/store"
	"github.com/firflight/firflight/internal/client/tables"
	"github.com/firflight/firflight/internal/i18n"
	"github.com/firflight/firflight/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type sessionService interface {
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	SignUp(ctx context.Context, email, password, name string) (*models.User, error)
	Restore(ctx context.Context) (*models.User, error)
	Current() *models.User
	SignOut(ctx context.Context) error
	Ping(ctx context.Context) error
}

type flightService interface {
	Search(ctx context.Context, from, to string, day time.Time) ([]models.Flight, bool, error)
	Get(ctx context.Context, id string) (*models.Flight, bool, error)
	Book(ctx context.Context, flightID string, seats int) (*models.Booking, error)
	Bookings(ctx context.Context) ([]models.Booking, bool, error)
	DownloadTicket(ctx context.Context, bookingID string) (string, error)
}

type eventQueue interface {
	Flush(ctx context.Context, sender analytics.Sender) (int, error)
}

type App struct {
	session  sessionService
	flights  flightService
	tracker  analytics.Tracker
	queue    eventQueue
	sender   analytics.Sender
	msgs     *i18n.Messages
	logger   logging.Logger
	interval time.Duration

	in  *bufio.Reader
	out io.Writer

	mu   sync.RWMutex
	mode Mode

	closers []io.Closer
}

// NewApp opens the local database, connects the API client and wires the
// services.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	msgs, err := i18n.New(cfg.Language)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg.DatabasePath, logger, tables.All()...)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(cfg.ServerURL, cfg.HealthAddr, logger)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	queue := analytics.NewStoreTracker(st.DB(), logger)

	return &App{
		session:  services.NewSessionService(apiClient, st.DB(), logger),
		flights:  services.NewFlightService(apiClient, st.DB(), cfg.TicketDir, logger),
		tracker:  analytics.Multi{analytics.NewLogTracker(logger), queue},
		queue:    queue,
		sender:   apiClient,
		msgs:     msgs,
		logger:   logger.With("module", "cli"),
		interval: cfg.OnlineCheckInterval,
		in:       bufio.NewReader(os.Stdin),
		out:      &lockedWriter{w: os.Stdout},
		mode:     ModeOnline,
		closers:  []io.Closer{apiClient, st},
	}, nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

// setMode switches the mode and reports whether it changed.
func (a *App) setMode(mode Mode) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode == mode {
		return false
	}
	a.mode = mode
	return true
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// Run shows the sign-in screen when no session is saved, then the main
// screen. It returns when the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.interval)

	user, err := a.session.Restore(ctx)
	if err != nil {
		a.logger.Warn(ctx, "failed to restore session", "error", err)
	}

	for {
		if user == nil {
			user, err = a.guest(ctx)
			if err != nil || user == nil {
				return ignoreEOF(err)
			}
		}

		a.println(a.msgs.T(i18n.MsgWelcome, "Name", displayName(user)))

		signedOut, err := a.mainScreen(ctx)
		if err != nil || !signedOut {
			return ignoreEOF(err)
		}
		user = nil
	}
}

func displayName(u *models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// lockedWriter serializes writes from the REPL and the online watcher.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
