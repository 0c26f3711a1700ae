package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// BuildInsertMap constructs a map with fields for outbox insertion.
func BuildInsertMap(eventID, eventType, listKey, aggregateID, payload string, createdAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColEventID:     eventID,
		ColEventType:   eventType,
		ColListKey:     listKey,
		ColAggregateID: aggregateID,
		ColPayload:     payload,
		ColStatus:      StatusPending,
		ColCreatedAt:   createdAt,
		ColProcessedAt: nil,
	}
}

// Values returns the map entries in Columns order, for SQL placeholders.
func Values(values map[string]interface{}) []interface{} {
	cols := Columns()
	out := make([]interface{}, 0, len(cols))
	for _, c := range cols {
		out = append(out, values[c])
	}
	return out
}

// InsertMutation constructs a mutation for the outbox table.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for c, v := range values {
		cols = append(cols, c)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}
