// Package store is the client's local SQLite storage engine.
//
// Open applies one goose migration per table (CreateTable up, DeleteTable
// down). The generic helpers Put, Get, List, Delete and Clear run SQL
// against a dbx.DBTX, so they work both on the database and inside a
// transaction, and map rows through the table's ToRow/FromRow.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/firflight/firflight/internal/client/tables"
	"github.com/firflight/firflight/internal/logging"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

var ErrNotFound = errors.New("record not found")

type Store struct {
	db       *sql.DB
	provider *goose.Provider
	logger   logging.Logger
}

// Open opens (creating if needed) the SQLite database at dsn and migrates it
// to the given schemas.
func Open(ctx context.Context, dsn string, logger logging.Logger, schemas ...tables.Schema) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	s, err := New(ctx, db, logger, schemas...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an already opened database and migrates it.
func New(ctx context.Context, db *sql.DB, logger logging.Logger, schemas ...tables.Schema) (*Store, error) {
	if len(schemas) == 0 {
		return nil, errors.New("store: no tables")
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, nil,
		goose.WithGoMigrations(migrations(schemas)...),
		goose.WithDisableGlobalRegistry(true),
	)
	if err != nil {
		return nil, fmt.Errorf("migrations setup: %w", err)
	}

	s := &Store{db: db, provider: provider, logger: logger.With("module", "store")}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func migrations(schemas []tables.Schema) []*goose.Migration {
	out := make([]*goose.Migration, 0, len(schemas))
	for i, schema := range schemas {
		up := &goose.GoFunc{RunTx: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, schema.CreateTable())
			return err
		}}
		down := &goose.GoFunc{RunTx: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, schema.DeleteTable())
			return err
		}}
		out = append(out, goose.NewGoMigration(int64(i+1), up, down))
	}
	return out
}

func withPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)&_txlock=immediate"
}

func (s *Store) migrate(ctx context.Context) error {
	results, err := s.provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	if len(results) > 0 {
		version, err := s.Version(ctx)
		if err != nil {
			return fmt.Errorf("schema version: %w", err)
		}
		s.logger.Debug(ctx, "schema migrated", "applied", len(results), "version", version)
	}
	return nil
}

// DB exposes the underlying database for repositories and transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Version returns the applied schema version.
func (s *Store) Version(ctx context.Context) (int64, error) {
	return s.provider.GetDBVersion(ctx)
}

// Reset drops every table and creates them again, discarding all local data.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.provider.DownTo(ctx, 0); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	s.logger.Info(ctx, "local data dropped")
	return s.migrate(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
