package dto

import "strings"

// AddedItem is a new list entry created on the client. TempID is the client's
// handle for the entry until the server assigns an id; absent and "" differ.
type AddedItem struct {
	Name   string  `json:"name"`
	TempID *string `json:"tempId,omitempty"`
}

// EditedItem renames an existing entry.
type EditedItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OrderEntry is one position of the client's final visual order. Exactly which
// fields are present decides how the entry is resolved.
type OrderEntry struct {
	ID     *string `json:"id,omitempty"`
	TempID *string `json:"tempId,omitempty"`
	Name   *string `json:"name,omitempty"`
}

// Batch is the complete diff of one admin editing session.
type Batch struct {
	Added       []AddedItem  `json:"added"`
	Edited      []EditedItem `json:"edited"`
	Deleted     []string     `json:"deleted"`
	VisualOrder []OrderEntry `json:"visualOrder"`
}

// Normalize trims every submitted name in place. Empty names are left for
// validation to reject.
func (b *Batch) Normalize() {
	for i := range b.Added {
		b.Added[i].Name = strings.TrimSpace(b.Added[i].Name)
	}
	for i := range b.Edited {
		b.Edited[i].Name = strings.TrimSpace(b.Edited[i].Name)
	}
	for i := range b.VisualOrder {
		if n := b.VisualOrder[i].Name; n != nil {
			trimmed := strings.TrimSpace(*n)
			b.VisualOrder[i].Name = &trimmed
		}
	}
}

// IsEmpty reports whether the batch carries no work at all.
func (b *Batch) IsEmpty() bool {
	return len(b.Added) == 0 && len(b.Edited) == 0 && len(b.Deleted) == 0 && len(b.VisualOrder) == 0
}

// ItemDTO is the read-side shape of a list item.
type ItemDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

// ReconcileReport summarizes what one batch changed. On a best-effort failure
// it counts the writes that were committed before the failing item.
type ReconcileReport struct {
	Added   int `json:"added"`
	Renamed int `json:"renamed"`
	Deleted int `json:"deleted"`
	Ranked  int `json:"ranked"`
	Skipped int `json:"skipped"`
}

// Writes is the number of committed mutations the report accounts for.
func (r ReconcileReport) Writes() int {
	return r.Added + r.Renamed + r.Deleted + r.Ranked
}
