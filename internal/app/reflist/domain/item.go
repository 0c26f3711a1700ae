package domain

import (
	"strings"

	"github.com/google/uuid"
)

// RankUnplaced marks an item that is persisted but has not been placed in a
// visual order yet. It only lives between an insert and the order pass of the
// same batch.
const RankUnplaced = -1

// RankFollowsArrayIndex records the ranking convention of the order pass:
// an entry at position i of visualOrder receives rank i, and entries that
// cannot be resolved still consume their position.
const RankFollowsArrayIndex = true

// Item is one entry of an admin-editable reference list.
type Item struct {
	ID   string
	Name string
	Rank int
}

// IsPlaced reports whether the item has been given a visual position.
func (i Item) IsPlaced() bool {
	return i.Rank != RankUnplaced
}

// NormalizeName trims surrounding whitespace from a submitted name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// ValidID reports whether id is a canonical UUID string, the only identifier
// shape the repositories ever hand out.
func ValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// NewID returns a fresh item identifier.
func NewID() string {
	return uuid.NewString()
}
