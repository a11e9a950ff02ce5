// Package services contains application services for the firflight client.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/firflight/firflight/internal/client/client"
	"github.com/firflight/firflight/internal/client/models"
	"github.com/firflight/firflight/internal/client/repositories/bookings"
	"github.com/firflight/firflight/internal/client/repositories/metadata"
	"github.com/firflight/firflight/internal/client/repositories/users"
	"github.com/firflight/firflight/internal/dbx"
	"github.com/firflight/firflight/internal/logging"
)

// SessionService owns the signed-in state: the access token handed to the
// API client and the current user, both mirrored in the local database so a
// restart does not require signing in again.
//
// It is safe for concurrent use.
type SessionService struct {
	client client.Client
	db     *sql.DB
	logger logging.Logger

	mu      sync.RWMutex
	current *models.User
}

func NewSessionService(c client.Client, db *sql.DB, logger logging.Logger) *SessionService {
	return &SessionService{client: c, db: db, logger: logger.With("module", "session")}
}

// SignIn authenticates against the server and persists the session.
// Errors from the server are returned as they are so callers can match
// client.ErrUnauthorized and show the server's message.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	token, user, err := s.client.SignIn(ctx, email, password)
	if err != nil {
		s.logger.Info(ctx, "sign in rejected", "email", email, "error", err)
		return nil, err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := metadata.NewSQLiteRepository(tx).Set(ctx, metadata.KeyAccessToken, []byte(token)); err != nil {
			return err
		}
		return users.NewSQLiteRepository(tx).Save(ctx, *user)
	})
	if err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.client.SetAccessToken(token)
	s.setCurrent(user)
	s.logger.Info(ctx, "signed in", "user_id", user.ID)
	return user, nil
}

// SignUp creates an account. It does not sign in.
func (s *SessionService) SignUp(ctx context.Context, email, password, name string) (*models.User, error) {
	return s.client.SignUp(ctx, email, password, name)
}

// Restore loads a saved session. It returns nil when there is none.
func (s *SessionService) Restore(ctx context.Context) (*models.User, error) {
	token, err := metadata.NewSQLiteRepository(s.db).Get(ctx, metadata.KeyAccessToken)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if len(token) == 0 {
		return nil, nil
	}

	user, err := users.NewSQLiteRepository(s.db).Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	s.client.SetAccessToken(string(token))
	s.setCurrent(user)
	return user, nil
}

// Current returns the signed-in user or nil.
func (s *SessionService) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// SignOut forgets the session and the user's cached bookings.
func (s *SessionService) SignOut(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := metadata.NewSQLiteRepository(tx).Delete(ctx, metadata.KeyAccessToken); err != nil {
			return err
		}
		if err := users.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		return bookings.NewSQLiteRepository(tx).Clear(ctx)
	})
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}

	s.client.SetAccessToken("")
	s.setCurrent(nil)
	return nil
}

// Ping proxies a liveness check to the underlying client.
func (s *SessionService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *SessionService) setCurrent(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = u
}
