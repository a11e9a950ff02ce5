package repomanager

import (
	"context"
	"database/sql"

	"github.com/firflight/firflight/internal/dbx"
	"github.com/firflight/firflight/internal/server/repositories/bookings"
	"github.com/firflight/firflight/internal/server/repositories/events"
	"github.com/firflight/firflight/internal/server/repositories/flights"
	"github.com/firflight/firflight/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a connection or a
// transaction, so services can run several of them in one dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Flights(db dbx.DBTX) flights.Repository
	Bookings(db dbx.DBTX) bookings.Repository
	Events(db dbx.DBTX) events.Repository
}
