package tables

import "github.com/firflight/firflight/internal/client/models"

// FlightTable caches flights returned by searches so they can be browsed
// offline.
type FlightTable struct{}

// Flights is the flight cache table.
var Flights Table[models.Flight] = FlightTable{}

func (FlightTable) Name() string { return "flights" }

func (FlightTable) CreateTable() string {
	return `CREATE TABLE IF NOT EXISTS flights (
	id          TEXT PRIMARY KEY,
	number      TEXT NOT NULL,
	airline     TEXT NOT NULL,
	origin      TEXT NOT NULL,
	destination TEXT NOT NULL,
	departs_at  TEXT NOT NULL,
	arrives_at  TEXT NOT NULL,
	price_cents INTEGER NOT NULL,
	currency    TEXT NOT NULL,
	seats_left  INTEGER,
	aircraft    TEXT
)`
}

func (FlightTable) DeleteTable() string { return `DROP TABLE IF EXISTS flights` }

// ToRow stores times as Stamp text so departs_at range filters and ordering
// work in SQL.
func (FlightTable) ToRow(f models.Flight) Row {
	return Row{
		"id":          f.ID,
		"number":      f.Number,
		"airline":     f.Airline,
		"origin":      f.Origin,
		"destination": f.Destination,
		"departs_at":  Stamp(f.DepartsAt),
		"arrives_at":  Stamp(f.ArrivesAt),
		"price_cents": f.PriceCents,
		"currency":    f.Currency,
		"seats_left":  int64(f.SeatsLeft),
		"aircraft":    OptText(f.Aircraft),
	}
}

// FromRow treats seats_left and aircraft as optional; everything else is
// required.
func (FlightTable) FromRow(r Row) (models.Flight, error) {
	rr := rowReader{row: r}
	f := models.Flight{
		ID:          rr.str("id"),
		Number:      rr.str("number"),
		Airline:     rr.str("airline"),
		Origin:      rr.str("origin"),
		Destination: rr.str("destination"),
		DepartsAt:   rr.time("departs_at"),
		ArrivesAt:   rr.time("arrives_at"),
		PriceCents:  rr.int64("price_cents"),
		Currency:    rr.str("currency"),
		SeatsLeft:   int(rr.optInt64("seats_left")),
		Aircraft:    rr.optStr("aircraft"),
	}
	if rr.err != nil {
		return models.Flight{}, rr.err
	}
	return f, nil
}
