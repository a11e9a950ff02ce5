// Package server wires the firflight backend: PostgreSQL repositories,
// services, the JSON API and the gRPC health endpoint, with graceful
// shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/firflight/firflight/internal/logging"
	"github.com/firflight/firflight/internal/server/config"
	gs "github.com/firflight/firflight/internal/server/grpc"
	"github.com/firflight/firflight/internal/server/httpapi"
	"github.com/firflight/firflight/internal/server/repositories/repomanager"
	"github.com/firflight/firflight/internal/server/services"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    runner
	health runner
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := repomanager.OpenDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	us := services.NewUserService(db, rm, cfg)
	fs := services.NewFlightService(db, rm)
	bs := services.NewBookingService(db, rm, services.NewTicketStore(cfg))
	es := services.NewEventService(db, rm)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		api:    httpapi.NewServer(cfg.HTTPAddr, logger, us, fs, bs, es, cfg.SignInRateLimit),
		health: gs.NewHealthServer(cfg.HealthAddr, logger),
	}, nil
}

// Run serves until ctx is cancelled or a server fails; either stops both.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.logger.Info(ctx, "Starting app...")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, r := range []runner{app.api, app.health} {
		wg.Add(1)
		go func(r runner) {
			defer wg.Done()
			if err := r.Run(ctx); err != nil {
				app.logger.Error(ctx, err.Error())
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
			cancel()
		}(r)
	}
	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return firstErr
}

func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}
