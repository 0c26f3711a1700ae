package domain

import "time"

// ListEvent is a fact about a change applied to a reference list.
type ListEvent interface {
	EventType() string
	List() ListKey
	AggregateID() string
	OccurredAt() time.Time
}

// ItemAddedEvent is raised when a new item is inserted.
type ItemAddedEvent struct {
	ListKey ListKey
	ItemID  string
	Name    string
	TempID  *string
	AddedAt time.Time
}

func (e *ItemAddedEvent) EventType() string     { return "reflist.item_added" }
func (e *ItemAddedEvent) List() ListKey         { return e.ListKey }
func (e *ItemAddedEvent) AggregateID() string   { return e.ItemID }
func (e *ItemAddedEvent) OccurredAt() time.Time { return e.AddedAt }

// ItemRenamedEvent is raised when an item's name changes.
type ItemRenamedEvent struct {
	ListKey   ListKey
	ItemID    string
	OldName   string
	NewName   string
	RenamedAt time.Time
}

func (e *ItemRenamedEvent) EventType() string     { return "reflist.item_renamed" }
func (e *ItemRenamedEvent) List() ListKey         { return e.ListKey }
func (e *ItemRenamedEvent) AggregateID() string   { return e.ItemID }
func (e *ItemRenamedEvent) OccurredAt() time.Time { return e.RenamedAt }

// ItemDeletedEvent is raised when an existing item is removed.
type ItemDeletedEvent struct {
	ListKey   ListKey
	ItemID    string
	Name      string
	DeletedAt time.Time
}

func (e *ItemDeletedEvent) EventType() string     { return "reflist.item_deleted" }
func (e *ItemDeletedEvent) List() ListKey         { return e.ListKey }
func (e *ItemDeletedEvent) AggregateID() string   { return e.ItemID }
func (e *ItemDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }

// RankAssignment is one rank written by the order pass.
type RankAssignment struct {
	ItemID string
	Rank   int
}

// ListReorderedEvent is raised once per batch when the order pass wrote ranks.
// AggregateID is the list key since the event spans items.
type ListReorderedEvent struct {
	ListKey     ListKey
	Assignments []RankAssignment
	ReorderedAt time.Time
}

func (e *ListReorderedEvent) EventType() string     { return "reflist.reordered" }
func (e *ListReorderedEvent) List() ListKey         { return e.ListKey }
func (e *ListReorderedEvent) AggregateID() string   { return string(e.ListKey) }
func (e *ListReorderedEvent) OccurredAt() time.Time { return e.ReorderedAt }
