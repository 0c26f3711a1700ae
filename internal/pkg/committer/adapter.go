package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// Applier applies a plan atomically. Stores depend on this rather than on
// the Spanner client so they can be exercised without a database.
type Applier interface {
	Apply(ctx context.Context, plan *Plan) error
}

// Adapter commits plans in a Spanner read-write transaction.
type Adapter struct {
	client *spanner.Client
}

func NewAdapter(client *spanner.Client) *Adapter {
	return &Adapter{client: client}
}

func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}

	if a.client == nil {
		return fmt.Errorf("committer: spanner client is nil")
	}

	_, err := a.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		return tx.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return fmt.Errorf("committer: apply %d mutations: %w", plan.Len(), err)
	}
	return nil
}
