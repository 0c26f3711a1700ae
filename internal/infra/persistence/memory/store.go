// Package memory is the in-process backend of a reference list. It is the
// reference implementation the use case tests run against.
package memory

import (
	"context"
	"sort"
	"sync"

	contracts "github.com/murkotick/reflist-service/internal/app/reflist/contracts"
	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/app/reflist/dto"
)

var _ contracts.ListStore = (*Store)(nil)

// state keeps items in insertion order so FindOne is deterministic when a
// filter matches more than one item.
type state struct {
	items []domain.Item
}

func (s state) clone() state {
	items := make([]domain.Item, len(s.items))
	copy(items, s.items)
	return state{items: items}
}

func (s *state) index(spec domain.ListSpec, f contracts.Filter) int {
	for i, it := range s.items {
		if f.Matches(spec, it) {
			return i
		}
	}
	return -1
}

// Store holds one list in memory.
type Store struct {
	spec  domain.ListSpec
	newID func() string

	mu    sync.RWMutex
	state state
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the uuid generator, for tests that need stable ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func NewStore(spec domain.ListSpec, opts ...Option) *Store {
	s := &Store{spec: spec, newID: domain.NewID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed appends items as-is, assigning ids to those without one. It returns
// the stored items.
func (s *Store) Seed(items ...domain.Item) []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			it.ID = s.newID()
		}
		s.state.items = append(s.state.items, it)
		out = append(out, it)
	}
	return out
}

// Items returns a copy of the stored items in insertion order.
func (s *Store) Items() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone().items
}

func (s *Store) FindOne(ctx context.Context, f contracts.Filter) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&repo{spec: s.spec, newID: s.newID, st: &s.state}).FindOne(ctx, f)
}

func (s *Store) InsertOne(ctx context.Context, item domain.Item) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&repo{spec: s.spec, newID: s.newID, st: &s.state}).InsertOne(ctx, item)
}

func (s *Store) UpdateOne(ctx context.Context, f contracts.Filter, p contracts.Patch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&repo{spec: s.spec, newID: s.newID, st: &s.state}).UpdateOne(ctx, f, p)
}

func (s *Store) DeleteOne(ctx context.Context, f contracts.Filter) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&repo{spec: s.spec, newID: s.newID, st: &s.state}).DeleteOne(ctx, f)
}

// RunInTransaction runs fn against a copy of the list and swaps it in only
// when fn succeeds. The store is locked for the whole call.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context, repo contracts.ItemRepo) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.state.clone()
	if err := fn(ctx, &repo{spec: s.spec, newID: s.newID, st: &tx}); err != nil {
		return err
	}
	s.state = tx
	return nil
}

// ListItems returns the items ordered by rank, then name.
func (s *Store) ListItems(_ context.Context) ([]*dto.ItemDTO, error) {
	s.mu.RLock()
	items := s.state.clone().items
	s.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Rank != items[j].Rank {
			return items[i].Rank < items[j].Rank
		}
		return items[i].Name < items[j].Name
	})

	out := make([]*dto.ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, &dto.ItemDTO{ID: it.ID, Name: it.Name, Rank: it.Rank})
	}
	return out, nil
}

// repo operates on a state the caller has already locked.
type repo struct {
	spec  domain.ListSpec
	newID func() string
	st    *state
}

func (r *repo) FindOne(_ context.Context, f contracts.Filter) (*domain.Item, error) {
	i := r.st.index(r.spec, f)
	if i < 0 {
		return nil, domain.ErrItemNotFound
	}
	it := r.st.items[i]
	return &it, nil
}

func (r *repo) InsertOne(_ context.Context, item domain.Item) (string, error) {
	if r.st.index(r.spec, contracts.ByName(item.Name)) >= 0 {
		return "", errUniqueName(item.Name)
	}
	item.ID = r.newID()
	r.st.items = append(r.st.items, item)
	return item.ID, nil
}

func (r *repo) UpdateOne(_ context.Context, f contracts.Filter, p contracts.Patch) (bool, error) {
	i := r.st.index(r.spec, f)
	if i < 0 {
		return false, nil
	}
	if p.Name != nil {
		if r.st.index(r.spec, contracts.NameTakenByOther(*p.Name, r.st.items[i].ID)) >= 0 {
			return false, errUniqueName(*p.Name)
		}
		r.st.items[i].Name = *p.Name
	}
	if p.Rank != nil {
		r.st.items[i].Rank = *p.Rank
	}
	return true, nil
}

func (r *repo) DeleteOne(_ context.Context, f contracts.Filter) (bool, error) {
	i := r.st.index(r.spec, f)
	if i < 0 {
		return false, nil
	}
	r.st.items = append(r.st.items[:i], r.st.items[i+1:]...)
	return true, nil
}
