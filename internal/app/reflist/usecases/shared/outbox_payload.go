package shared

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/models/m_outbox"
)

// MarshalEventPayload converts a list event into the JSON payload stored in
// the outbox.
func MarshalEventPayload(ev domain.ListEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	var payload map[string]interface{}
	switch e := ev.(type) {
	case *domain.ItemAddedEvent:
		payload = map[string]interface{}{
			"item_id":  e.ItemID,
			"name":     e.Name,
			"added_at": e.AddedAt,
		}
		if e.TempID != nil {
			payload["temp_id"] = *e.TempID
		}

	case *domain.ItemRenamedEvent:
		payload = map[string]interface{}{
			"item_id":    e.ItemID,
			"old_name":   e.OldName,
			"new_name":   e.NewName,
			"renamed_at": e.RenamedAt,
		}

	case *domain.ItemDeletedEvent:
		payload = map[string]interface{}{
			"item_id":    e.ItemID,
			"name":       e.Name,
			"deleted_at": e.DeletedAt,
		}

	case *domain.ListReorderedEvent:
		ranks := make([]map[string]interface{}, 0, len(e.Assignments))
		for _, a := range e.Assignments {
			ranks = append(ranks, map[string]interface{}{"item_id": a.ItemID, "rank": a.Rank})
		}
		payload = map[string]interface{}{
			"ranks":        ranks,
			"reordered_at": e.ReorderedAt,
		}

	default:
		b, err := json.Marshal(ev)
		if err != nil {
			return "", fmt.Errorf("marshal outbox payload for %T: %w", ev, err)
		}
		return string(b), nil
	}

	payload["list"] = string(ev.List())
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal outbox payload for %T: %w", ev, err)
	}
	return string(b), nil
}

// BuildOutboxMap turns an event into an outbox row with a fresh event id.
func BuildOutboxMap(ev domain.ListEvent) (map[string]interface{}, error) {
	payload, err := MarshalEventPayload(ev)
	if err != nil {
		return nil, err
	}
	return m_outbox.BuildInsertMap(
		uuid.NewString(),
		ev.EventType(),
		string(ev.List()),
		ev.AggregateID(),
		payload,
		ev.OccurredAt().UTC(),
	), nil
}
