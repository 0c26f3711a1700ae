package memory

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	contracts "github.com/murkotick/reflist-service/internal/app/reflist/contracts"
	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
)

var _ contracts.EventSink = (*EventLog)(nil)

// EventLog is the event sink of the memory backend. It keeps every published
// event and writes one debug line per event.
type EventLog struct {
	logger logrus.FieldLogger

	mu     sync.Mutex
	events []domain.ListEvent
}

func NewEventLog(logger logrus.FieldLogger) *EventLog {
	return &EventLog{logger: logger}
}

func (l *EventLog) Publish(_ context.Context, events []domain.ListEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, ev := range events {
		l.events = append(l.events, ev)
		if l.logger != nil {
			l.logger.WithFields(logrus.Fields{
				"event":     ev.EventType(),
				"list":      string(ev.List()),
				"aggregate": ev.AggregateID(),
			}).Debug("list event")
		}
	}
	return nil
}

// Events returns the published events in order.
func (l *EventLog) Events() []domain.ListEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.ListEvent, len(l.events))
	copy(out, l.events)
	return out
}

// Reset forgets all recorded events.
func (l *EventLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
}
