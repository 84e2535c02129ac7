package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const CatalogEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "catalog_event",
	"fields": [
		{"name": "event_id", "type": "string"},
		{"name": "kind", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "quantity", "type": "long"},
		{"name": "favorite", "type": "boolean"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type CatalogEventV1 struct {
	EventID    string    `avro:"event_id"`
	Kind       string    `avro:"kind"`
	ProductID  int64     `avro:"product_id"`
	Quantity   int64     `avro:"quantity"`
	Favorite   bool      `avro:"favorite"`
	OccurredAt time.Time `avro:"occurred_at"`
}

// CatalogEventV1Avro returns the parsed [CatalogEventSchemaTextV1].
// It panics if the schema text is invalid.
func CatalogEventV1Avro() avro.Schema {
	return avro.MustParse(CatalogEventSchemaTextV1)
}
