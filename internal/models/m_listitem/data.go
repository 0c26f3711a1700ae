package m_listitem

import (
	"time"

	"cloud.google.com/go/spanner"
)

// BuildInsertMap prepares the canonical fields for insertion.
func (t Table) BuildInsertMap(itemID, name string, rank int64, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColItemID:    itemID,
		t.NameCol:    name,
		ColSortRank:  rank,
		ColCreatedAt: now,
		ColUpdatedAt: now,
	}
}

// BuildUpdateMap prepares an update of name and/or rank. It always stamps
// updated_at and returns nil when neither field changes.
func (t Table) BuildUpdateMap(name *string, rank *int64, now time.Time) map[string]interface{} {
	if name == nil && rank == nil {
		return nil
	}
	m := map[string]interface{}{ColUpdatedAt: now}
	if name != nil {
		m[t.NameCol] = *name
	}
	if rank != nil {
		m[ColSortRank] = *rank
	}
	return m
}

// InsertMutation builds a spanner.Insert mutation from a values map.
func (t Table) InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Insert(t.Name, cols, vals)
}

// UpdateMutation builds a spanner.Update mutation keyed by item_id. values
// must not contain item_id.
func (t Table) UpdateMutation(itemID string, values map[string]interface{}) *spanner.Mutation {
	if len(values) == 0 {
		return nil
	}
	cols := []string{ColItemID}
	vals := []interface{}{itemID}
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Update(t.Name, cols, vals)
}

// DeleteMutation removes one row by primary key.
func (t Table) DeleteMutation(itemID string) *spanner.Mutation {
	return spanner.Delete(t.Name, spanner.Key{itemID})
}
