package tables

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// ErrMalformedRow is returned by FromRow when a required column is missing or
// holds a value of the wrong type.
var ErrMalformedRow = errors.New("malformed row")

// Row maps column names to values. A NULL column and an absent column are
// both read as nil.
//
// Values produced by ToRow use SQLite storage classes: string for TEXT,
// int64 for INTEGER (booleans as 0/1), []byte for BLOB and nil for NULL.
// Times are TEXT in TimeLayout, which keeps nanoseconds and sorts in time
// order.
type Row map[string]any

// Columns returns the column names in lexical order.
func (r Row) Columns() []string {
	cols := make([]string, 0, len(r))
	for c := range r {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

func missing(col string) error {
	return fmt.Errorf("%w: column %q is missing", ErrMalformedRow, col)
}

func badType(col string, v any) error {
	return fmt.Errorf("%w: column %q has unexpected type %T", ErrMalformedRow, col, v)
}

// String reads a required TEXT column.
func (r Row) String(col string) (string, error) {
	switch v := r[col].(type) {
	case nil:
		return "", missing(col)
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", badType(col, v)
	}
}

// OptString reads a nullable TEXT column.
func (r Row) OptString(col string) (string, error) {
	if r[col] == nil {
		return "", nil
	}
	return r.String(col)
}

// Int64 reads a required INTEGER column.
func (r Row) Int64(col string) (int64, error) {
	switch v := r[col].(type) {
	case nil:
		return 0, missing(col)
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("%w: column %q is not an integer", ErrMalformedRow, col)
		}
		return int64(v), nil
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: column %q: %v", ErrMalformedRow, col, err)
		}
		return n, nil
	default:
		return 0, badType(col, v)
	}
}

func (r Row) OptInt64(col string) (int64, error) {
	if r[col] == nil {
		return 0, nil
	}
	return r.Int64(col)
}

// Bool reads a 0/1 INTEGER column.
func (r Row) Bool(col string) (bool, error) {
	if b, ok := r[col].(bool); ok {
		return b, nil
	}
	n, err := r.Int64(col)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (r Row) OptBool(col string) (bool, error) {
	if r[col] == nil {
		return false, nil
	}
	return r.Bool(col)
}

// Bytes reads a required BLOB column.
func (r Row) Bytes(col string) ([]byte, error) {
	switch v := r[col].(type) {
	case nil:
		return nil, missing(col)
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, badType(col, v)
	}
}

// TimeLayout is the storage form of times: UTC with a fixed-width fraction.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// Time reads a TimeLayout TEXT column as a UTC time.
func (r Row) Time(col string) (time.Time, error) {
	s, err := r.String(col)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: column %q: %v", ErrMalformedRow, col, err)
	}
	return t, nil
}

// Stamp is the storage form of t used by ToRow. Equal instants give equal
// stamps regardless of t's location.
func Stamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// OptText stores "" as NULL.
func OptText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Flag stores a boolean as 0 or 1.
func Flag(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// rowReader reads several columns and keeps the first error, so FromRow
// implementations can read all fields and check once.
type rowReader struct {
	row Row
	err error
}

func (rr *rowReader) str(col string) string {
	if rr.err != nil {
		return ""
	}
	v, err := rr.row.String(col)
	rr.err = err
	return v
}

func (rr *rowReader) optStr(col string) string {
	if rr.err != nil {
		return ""
	}
	v, err := rr.row.OptString(col)
	rr.err = err
	return v
}

func (rr *rowReader) int64(col string) int64 {
	if rr.err != nil {
		return 0
	}
	v, err := rr.row.Int64(col)
	rr.err = err
	return v
}

func (rr *rowReader) optInt64(col string) int64 {
	if rr.err != nil {
		return 0
	}
	v, err := rr.row.OptInt64(col)
	rr.err = err
	return v
}

func (rr *rowReader) optBool(col string) bool {
	if rr.err != nil {
		return false
	}
	v, err := rr.row.OptBool(col)
	rr.err = err
	return v
}

func (rr *rowReader) bytes(col string) []byte {
	if rr.err != nil {
		return nil
	}
	v, err := rr.row.Bytes(col)
	rr.err = err
	return v
}

func (rr *rowReader) optBytes(col string) []byte {
	if rr.err != nil || rr.row[col] == nil {
		return nil
	}
	return rr.bytes(col)
}

func (rr *rowReader) time(col string) time.Time {
	if rr.err != nil {
		return time.Time{}
	}
	v, err := rr.row.Time(col)
	rr.err = err
	return v
}
