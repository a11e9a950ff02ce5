// Package tables describes how each client model is stored in the local
// SQLite database.
//
// A Table is a stateless value: it knows the DDL for its table and how to map
// a model to a Row and back. It does not touch the database; the store
// package runs the statements and owns transactions and locking. Tables are
// safe to share between goroutines.
//
// For every valid value v of a table's model,
//
//	t.FromRow(t.ToRow(v)) == v
//
// both in memory and after a write/read through SQLite.
package tables

// Schema is the type-independent part of a table: its name and DDL.
type Schema interface {
	// Name is the SQL table name.
	Name() string

	// CreateTable returns the statement creating the table.
	CreateTable() string

	// DeleteTable returns the statement dropping the table.
	DeleteTable() string
}

// Table maps the model T to and from rows of a single table.
type Table[T any] interface {
	Schema

	// ToRow returns a value for every column declared by CreateTable.
	ToRow(v T) Row

	// FromRow rebuilds T. NULL or absent optional columns become zero
	// values; a missing or malformed required column yields ErrMalformedRow.
	FromRow(r Row) (T, error)
}

// All lists the client tables in migration order. A table's position is its
// schema version, so new tables must be appended.
func All() []Schema {
	return []Schema{
		MetadataTable{},
		UserTable{},
		FlightTable{},
		BookingTable{},
		EventTable{},
	}
}
