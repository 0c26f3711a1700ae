package contracts

import (
	"context"

	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
)

// Filter selects list items. Zero-valued fields do not constrain the match.
type Filter struct {
	ID        string
	Name      *string
	Rank      *int
	ExcludeID string
}

// ByID matches the item with the given id.
func ByID(id string) Filter {
	return Filter{ID: id}
}

// ByName matches an item holding name, under the list's name matching rule.
func ByName(name string) Filter {
	return Filter{Name: &name}
}

// NameTakenByOther matches an item holding name whose id differs from id.
func NameTakenByOther(name, id string) Filter {
	return Filter{Name: &name, ExcludeID: id}
}

// UnplacedByName matches a newly added item that has not been ranked yet.
func UnplacedByName(name string) Filter {
	rank := domain.RankUnplaced
	return Filter{Name: &name, Rank: &rank}
}

// Matches evaluates the filter against an item in memory.
func (f Filter) Matches(spec domain.ListSpec, it domain.Item) bool {
	if f.ID != "" && it.ID != f.ID {
		return false
	}
	if f.ExcludeID != "" && it.ID == f.ExcludeID {
		return false
	}
	if f.Name != nil && !spec.NamesEqual(it.Name, *f.Name) {
		return false
	}
	if f.Rank != nil && it.Rank != *f.Rank {
		return false
	}
	return true
}

// OnlyID reports whether the filter is a plain primary-key lookup.
func (f Filter) OnlyID() bool {
	return f.ID != "" && f.Name == nil && f.Rank == nil && f.ExcludeID == ""
}

// Patch lists the fields an update changes. Nil fields are left untouched.
type Patch struct {
	Name *string
	Rank *int
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Rank == nil
}

// ItemRepo is the document-store view of one reference list. Every call is
// committed on return unless the repo was handed out by a Transactor.
type ItemRepo interface {
	// FindOne returns the first item matching f, or domain.ErrItemNotFound.
	FindOne(ctx context.Context, f Filter) (*domain.Item, error)

	// InsertOne persists name and rank and returns the id assigned by the store.
	InsertOne(ctx context.Context, item domain.Item) (string, error)

	// UpdateOne applies p to the first item matching f and reports whether one matched.
	UpdateOne(ctx context.Context, f Filter, p Patch) (bool, error)

	// DeleteOne removes the first item matching f and reports whether one matched.
	DeleteOne(ctx context.Context, f Filter) (bool, error)
}

// Transactor runs fn against a repo whose writes commit or roll back together.
// fn may be invoked more than once if the backend retries aborted transactions.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, repo ItemRepo) error) error
}

// ListStore is everything a backend provides for one list.
type ListStore interface {
	ItemRepo
	Transactor
	ReadModel
}
