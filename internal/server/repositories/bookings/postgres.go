package bookings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/firflight/firflight/internal/common"
	"github.com/firflight/firflight/internal/dbx"
	"github.com/firflight/firflight/internal/server/models"
)

const selectBookings = `SELECT b.id, b.user_id, b.flight_id, f.number, b.seats, b.status, b.ticket_key, b.created_at
	FROM bookings b JOIN flights f ON f.id = b.flight_id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(s scanner) (models.Booking, error) {
	var b models.Booking
	var status string
	err := s.Scan(&b.ID, &b.UserID, &b.FlightID, &b.FlightNumber, &b.Seats, &status, &b.TicketKey, &b.CreatedAt)
	b.Status = models.BookingStatus(status)
	return b, err
}

func (r *PostgresRepository) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	query :=
		`INSERT INTO bookings (id, user_id, flight_id, seats, status, ticket_key)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		b.ID, b.UserID, b.FlightID, b.Seats, string(b.Status), b.TicketKey).Scan(&b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	query := selectBookings + ` WHERE b.user_id = $1 ORDER BY b.created_at DESC, b.id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, selectBookings+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &b, nil
}
