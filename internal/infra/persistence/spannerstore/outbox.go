package spannerstore

import (
	"context"

	contracts "github.com/murkotick/reflist-service/internal/app/reflist/contracts"
	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/app/reflist/usecases/shared"
	"github.com/murkotick/reflist-service/internal/models/m_outbox"
	committer "github.com/murkotick/reflist-service/internal/pkg/committer"
)

var _ contracts.EventSink = (*OutboxSink)(nil)

// OutboxSink writes list events to outbox_events. All events of one batch
// commit in a single plan.
type OutboxSink struct {
	applier committer.Applier
}

func NewOutboxSink(applier committer.Applier) *OutboxSink {
	return &OutboxSink{applier: applier}
}

func (o *OutboxSink) Publish(ctx context.Context, events []domain.ListEvent) error {
	plan := committer.NewPlan()
	for _, ev := range events {
		values, err := shared.BuildOutboxMap(ev)
		if err != nil {
			return err
		}
		plan.Add(m_outbox.InsertMutation(values))
	}
	return o.applier.Apply(ctx, plan)
}
