package tables

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/firflight/firflight/internal/client/models"
)

// EventTable queues analytics events until they are uploaded.
type EventTable struct{}

// Events is the analytics queue table.
var Events Table[models.QueuedEvent] = EventTable{}

func (EventTable) Name() string { return "events" }

func (EventTable) CreateTable() string {
	return `CREATE TABLE IF NOT EXISTS events (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	attributes TEXT,
	created_at TEXT NOT NULL
)`
}

func (EventTable) DeleteTable() string { return `DROP TABLE IF EXISTS events` }

// EncodeAttributes encodes attrs as a JSON object. Values that cannot be
// encoded (NaN, channels, funcs) are left out and their keys returned in
// sorted order. A nil map encodes as "".
func EncodeAttributes(attrs map[string]any) (string, []string) {
	if attrs == nil {
		return "", nil
	}
	var dropped []string
	kept := make(map[string]json.RawMessage, len(attrs))
	for k, v := range attrs {
		b, err := json.Marshal(v)
		if err != nil {
			dropped = append(dropped, k)
			continue
		}
		kept[k] = b
	}
	sort.Strings(dropped)
	// RawMessage values were produced by json.Marshal above
	b, err := json.Marshal(kept)
	if err != nil {
		return "{}", dropped
	}
	return string(b), dropped
}

// ToRow stores attributes as a JSON object built by EncodeAttributes.
// Strings and booleans round-trip exactly. Callers that need to know about
// dropped attributes run EncodeAttributes first.
func (EventTable) ToRow(e models.QueuedEvent) Row {
	var attrs any
	if e.Attributes != nil {
		attrs, _ = EncodeAttributes(e.Attributes)
	}
	return Row{
		"id":         e.ID,
		"name":       e.Name,
		"attributes": attrs,
		"created_at": Stamp(e.CreatedAt),
	}
}

// FromRow decodes attributes; NULL attributes give a nil map.
func (EventTable) FromRow(r Row) (models.QueuedEvent, error) {
	rr := rowReader{row: r}
	e := models.QueuedEvent{
		ID:        rr.str("id"),
		Name:      rr.str("name"),
		CreatedAt: rr.time("created_at"),
	}
	raw := rr.optStr("attributes")
	if rr.err != nil {
		return models.QueuedEvent{}, rr.err
	}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &e.Attributes); err != nil {
			return models.QueuedEvent{}, fmt.Errorf("%w: column %q: %v", ErrMalformedRow, "attributes", err)
		}
	}
	return e, nil
}
