package m_outbox

const (
	TableName = "outbox_events"

	ColEventID     = "event_id"
	ColEventType   = "event_type"
	ColListKey     = "list_key"
	ColAggregateID = "aggregate_id"
	ColPayload     = "payload"
	ColStatus      = "status"
	ColCreatedAt   = "created_at"
	ColProcessedAt = "processed_at"

	StatusPending = "pending"
)

// Columns lists the outbox columns in insertion order.
func Columns() []string {
	return []string{ColEventID, ColEventType, ColListKey, ColAggregateID, ColPayload, ColStatus, ColCreatedAt, ColProcessedAt}
}
