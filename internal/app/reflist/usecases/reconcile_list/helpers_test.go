package reconcile_list

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	contracts "github.com/murkotick/reflist-service/internal/app/reflist/contracts"
	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/app/reflist/dto"
	"github.com/murkotick/reflist-service/internal/infra/persistence/memory"
	"github.com/murkotick/reflist-service/internal/pkg/clock"
)

var testNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	store  *memory.Store
	events *memory.EventLog
	rec    *fakeRecorder
	hook   *logtest.Hook
	it     *Interactor
}

func newFixture(t *testing.T, spec domain.ListSpec, mode Mode, seed ...domain.Item) *fixture {
	t.Helper()
	store := memory.NewStore(spec)
	store.Seed(seed...)
	return newFixtureOn(t, spec, store, store, mode)
}

// newFixtureOn lets a test put a wrapper in front of the memory store while
// still inspecting the store itself.
func newFixtureOn(t *testing.T, spec domain.ListSpec, store *memory.Store, ls contracts.ListStore, mode Mode) *fixture {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	f := &fixture{
		store:  store,
		events: memory.NewEventLog(nil),
		rec:    newFakeRecorder(),
		hook:   hook,
	}
	f.it = NewInteractor(spec, ls, clock.NewFake(testNow), logger, Options{
		Mode:     mode,
		Events:   f.events,
		Recorder: f.rec,
	})
	return f
}

func (f *fixture) byName(t *testing.T, name string) domain.Item {
	t.Helper()
	for _, it := range f.store.Items() {
		if it.Name == name {
			return it
		}
	}
	t.Fatalf("no item named %q", name)
	return domain.Item{}
}

func (f *fixture) names() []string {
	var out []string
	for _, it := range f.store.Items() {
		out = append(out, it.Name)
	}
	sort.Strings(out)
	return out
}

func (f *fixture) eventTypes() []string {
	var out []string
	for _, ev := range f.events.Events() {
		out = append(out, ev.EventType())
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func mustParse(t *testing.T, raw string) *dto.Batch {
	t.Helper()
	b, err := ParseBatch([]byte(raw))
	require.NoError(t, err)
	return b
}

type fakeRecorder struct {
	mu      sync.Mutex
	batches map[string]int
	items   map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{batches: map[string]int{}, items: map[string]int{}}
}

func (r *fakeRecorder) ObserveBatch(list, status string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches[list+"/"+status]++
}

func (r *fakeRecorder) ObserveItems(list, phase string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[list+"/"+phase] += n
}

var errDiskFull = errors.New("disk full")

// failingStore fails the configured operation once `after` calls of it have
// succeeded.
type failingStore struct {
	*memory.Store
	op    string
	after int
	calls int
}

func (s *failingStore) trip(op string) error {
	if op != s.op {
		return nil
	}
	s.calls++
	if s.calls > s.after {
		return errDiskFull
	}
	return nil
}

func (s *failingStore) FindOne(ctx context.Context, f contracts.Filter) (*domain.Item, error) {
	if err := s.trip("find"); err != nil {
		return nil, err
	}
	return s.Store.FindOne(ctx, f)
}

func (s *failingStore) InsertOne(ctx context.Context, item domain.Item) (string, error) {
	if err := s.trip("insert"); err != nil {
		return "", err
	}
	return s.Store.InsertOne(ctx, item)
}

func (s *failingStore) UpdateOne(ctx context.Context, f contracts.Filter, p contracts.Patch) (bool, error) {
	if err := s.trip("update"); err != nil {
		return false, err
	}
	return s.Store.UpdateOne(ctx, f, p)
}

func (s *failingStore) DeleteOne(ctx context.Context, f contracts.Filter) (bool, error) {
	if err := s.trip("delete"); err != nil {
		return false, err
	}
	return s.Store.DeleteOne(ctx, f)
}
