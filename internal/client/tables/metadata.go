package tables

import "github.com/firflight/firflight/internal/client/models"

// MetadataTable is a key/value table for local settings.
type MetadataTable struct{}

// Metadata is the key/value table. It holds the access token.
var Metadata Table[models.MetadataItem] = MetadataTable{}

func (MetadataTable) Name() string { return "metadata" }

func (MetadataTable) CreateTable() string {
	return `CREATE TABLE IF NOT EXISTS metadata (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`
}

func (MetadataTable) DeleteTable() string { return `DROP TABLE IF EXISTS metadata` }

// ToRow stores a nil Value as an empty BLOB. FromRow reads an empty BLOB back
// as nil, so nil and empty values are the same item.
func (MetadataTable) ToRow(m models.MetadataItem) Row {
	value := m.Value
	if value == nil {
		value = []byte{}
	}
	return Row{"key": m.Key, "value": value}
}

// FromRow requires key. A NULL or absent value reads as nil.
func (MetadataTable) FromRow(r Row) (models.MetadataItem, error) {
	rr := rowReader{row: r}
	m := models.MetadataItem{
		Key:   rr.str("key"),
		Value: rr.optBytes("value"),
	}
	if rr.err != nil {
		return models.MetadataItem{}, rr.err
	}
	if len(m.Value) == 0 {
		m.Value = nil
	}
	return m, nil
}
