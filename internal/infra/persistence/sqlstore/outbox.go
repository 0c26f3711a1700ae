package sqlstore

import (
	"context"
	"fmt"
	"strings"

	contracts "github.com/murkotick/reflist-service/internal/app/reflist/contracts"
	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/app/reflist/usecases/shared"
	"github.com/murkotick/reflist-service/internal/models/m_outbox"
)

var _ contracts.EventSink = (*OutboxSink)(nil)

// OutboxSink writes the events of one batch to outbox_events in a single
// transaction.
type OutboxSink struct {
	db *DB
}

func (o *OutboxSink) Publish(ctx context.Context, events []domain.ListEvent) (retErr error) {
	if len(events) == 0 {
		return nil
	}
	cols := m_outbox.Columns()
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		m_outbox.TableName, strings.Join(cols, ", "), o.db.dialect.placeholders(len(cols)))

	tx, err := o.db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	for _, ev := range events {
		values, err := shared.BuildOutboxMap(ev)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, m_outbox.Values(values)...); err != nil {
			return fmt.Errorf("insert outbox event %s: %w", ev.EventType(), err)
		}
	}
	return tx.Commit()
}

// Pending counts outbox rows not yet processed.
func (o *OutboxSink) Pending(ctx context.Context) (int, error) {
	a := &args{d: o.db.dialect}
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = %s",
		m_outbox.TableName, m_outbox.ColStatus, a.add(m_outbox.StatusPending))
	var n int
	if err := o.db.db.QueryRowContext(ctx, query, a.vals...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
