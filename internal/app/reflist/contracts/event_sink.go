package contracts

import (
	"context"

	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
)

// EventSink records list events after the changes they describe are committed.
// Spanner and SQL backends write them to the transactional outbox table.
type EventSink interface {
	Publish(ctx context.Context, events []domain.ListEvent) error
}
