package flights

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/firflight/firflight/internal/common"
	"github.com/firflight/firflight/internal/dbx"
	"github.com/firflight/firflight/internal/server/models"
)

const columns = `id, number, airline, origin, destination, departs_at, arrives_at, price_cents, currency, seats_left, aircraft`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFlight(s scanner) (models.Flight, error) {
	var f models.Flight
	err := s.Scan(&f.ID, &f.Number, &f.Airline, &f.Origin, &f.Destination,
		&f.DepartsAt, &f.ArrivesAt, &f.PriceCents, &f.Currency, &f.SeatsLeft, &f.Aircraft)
	return f, err
}

func (r *PostgresRepository) Search(ctx context.Context, origin, destination string, from, to time.Time) ([]models.Flight, error) {
	query :=
		`SELECT ` + columns + ` FROM flights
		 WHERE origin = $1 AND destination = $2 AND departs_at >= $3 AND departs_at < $4
		 ORDER BY departs_at, number`

	rows, err := r.db.QueryContext(ctx, query, origin, destination, from, to)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Flight, error) {
	query := `SELECT ` + columns + ` FROM flights WHERE id = $1`

	f, err := scanFlight(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &f, nil
}

func (r *PostgresRepository) Reserve(ctx context.Context, id string, seats int) (int, error) {
	query :=
		`UPDATE flights SET seats_left = seats_left - $2
		 WHERE id = $1 AND seats_left >= $2
		 RETURNING seats_left`

	var left int
	err := r.db.QueryRowContext(ctx, query, id, seats).Scan(&left)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrSoldOut
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return left, nil
}
