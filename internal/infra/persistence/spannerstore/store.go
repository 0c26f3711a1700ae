// Package spannerstore is the Cloud Spanner backend of a reference list.
package spannerstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	contracts "github.com/murkotick/reflist-service/internal/app/reflist/contracts"
	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/app/reflist/dto"
	"github.com/murkotick/reflist-service/internal/models/m_listitem"
	"github.com/murkotick/reflist-service/internal/pkg/clock"
	committer "github.com/murkotick/reflist-service/internal/pkg/committer"
)

var _ contracts.ListStore = (*Store)(nil)

// querier is satisfied by single-use read-only transactions and by
// read-write transactions.
type querier interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// Store serves one list table. Outside a transaction every write is its own
// committer plan, so it is committed when the call returns.
type Store struct {
	spec    domain.ListSpec
	table   m_listitem.Table
	client  *spanner.Client
	applier committer.Applier
	clock   clock.Clock
	newID   func() string
}

// Option configures a Store.
type Option func(*Store)

// WithApplier replaces the committer used for non-transactional writes.
func WithApplier(a committer.Applier) Option {
	return func(s *Store) { s.applier = a }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func NewStore(client *spanner.Client, spec domain.ListSpec, clk clock.Clock, opts ...Option) *Store {
	s := &Store{
		spec:    spec,
		table:   TableFor(spec),
		client:  client,
		applier: committer.NewAdapter(client),
		clock:   clk,
		newID:   domain.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TableFor maps a list spec onto its table model.
func TableFor(spec domain.ListSpec) m_listitem.Table {
	return m_listitem.Table{Name: spec.Table, NameCol: spec.NameColumn}
}

func (s *Store) FindOne(ctx context.Context, f contracts.Filter) (*domain.Item, error) {
	return findOne(ctx, s.client.Single(), s.table, s.spec, f)
}

func (s *Store) InsertOne(ctx context.Context, item domain.Item) (string, error) {
	id := s.newID()
	values := s.table.BuildInsertMap(id, item.Name, int64(item.Rank), s.clock.Now())
	if err := s.applier.Apply(ctx, committer.PlanOf(s.table.InsertMutation(values))); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateOne(ctx context.Context, f contracts.Filter, p contracts.Patch) (bool, error) {
	current, err := s.FindOne(ctx, f)
	if errors.Is(err, domain.ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	values := s.table.BuildUpdateMap(p.Name, rank64(p.Rank), s.clock.Now())
	if values == nil {
		return true, nil
	}
	err = s.applier.Apply(ctx, committer.PlanOf(s.table.UpdateMutation(current.ID, values)))
	if isNotFound(err) {
		// Deleted between the lookup and the write.
		return false, nil
	}
	return err == nil, err
}

func (s *Store) DeleteOne(ctx context.Context, f contracts.Filter) (bool, error) {
	current, err := s.FindOne(ctx, f)
	if errors.Is(err, domain.ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.applier.Apply(ctx, committer.PlanOf(s.table.DeleteMutation(current.ID))); err != nil {
		return false, err
	}
	return true, nil
}

// RunInTransaction runs fn in one read-write transaction. Spanner may retry
// fn when the transaction aborts.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context, repo contracts.ItemRepo) error) error {
	if s.client == nil {
		return fmt.Errorf("spannerstore: spanner client is nil")
	}
	_, err := s.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		return fn(ctx, &txRepo{store: s, tx: tx})
	})
	return err
}

// ListItems returns the items ordered by rank, then name.
func (s *Store) ListItems(ctx context.Context) ([]*dto.ItemDTO, error) {
	iter := s.client.Single().Query(ctx, listStmt(s.table))
	defer iter.Stop()

	out := make([]*dto.ItemDTO, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		it, err := scanItem(row)
		if err != nil {
			return nil, err
		}
		out = append(out, &dto.ItemDTO{ID: it.ID, Name: it.Name, Rank: it.Rank})
	}
}

// txRepo writes with DML so later reads in the same transaction see them.
type txRepo struct {
	store *Store
	tx    *spanner.ReadWriteTransaction
}

func (r *txRepo) FindOne(ctx context.Context, f contracts.Filter) (*domain.Item, error) {
	return findOne(ctx, r.tx, r.store.table, r.store.spec, f)
}

func (r *txRepo) InsertOne(ctx context.Context, item domain.Item) (string, error) {
	id := r.store.newID()
	values := r.store.table.BuildInsertMap(id, item.Name, int64(item.Rank), r.store.clock.Now())
	if _, err := r.tx.Update(ctx, insertDML(r.store.table, values)); err != nil {
		return "", err
	}
	return id, nil
}

func (r *txRepo) UpdateOne(ctx context.Context, f contracts.Filter, p contracts.Patch) (bool, error) {
	current, err := r.FindOne(ctx, f)
	if errors.Is(err, domain.ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	values := r.store.table.BuildUpdateMap(p.Name, rank64(p.Rank), r.store.clock.Now())
	if values == nil {
		return true, nil
	}
	n, err := r.tx.Update(ctx, updateDML(r.store.table, current.ID, values))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *txRepo) DeleteOne(ctx context.Context, f contracts.Filter) (bool, error) {
	current, err := r.FindOne(ctx, f)
	if errors.Is(err, domain.ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	n, err := r.tx.Update(ctx, deleteDML(r.store.table, current.ID))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func findOne(ctx context.Context, q querier, t m_listitem.Table, spec domain.ListSpec, f contracts.Filter) (*domain.Item, error) {
	iter := q.Query(ctx, findStmt(t, spec, f))
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return scanItem(row)
}

func scanItem(row *spanner.Row) (*domain.Item, error) {
	var (
		id, name string
		rank     int64
	)
	if err := row.Columns(&id, &name, &rank); err != nil {
		return nil, err
	}
	return &domain.Item{ID: id, Name: name, Rank: int(rank)}, nil
}

func rank64(r *int) *int64 {
	if r == nil {
		return nil
	}
	v := int64(*r)
	return &v
}

func isNotFound(err error) bool {
	return err != nil && spanner.ErrCode(err) == codes.NotFound
}
