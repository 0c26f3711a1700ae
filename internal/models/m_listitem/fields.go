package m_listitem

// Field constants shared by every reference list table. The name column
// differs per list and is carried by Table.
const (
	ColItemID    = "item_id"
	ColSortRank  = "sort_rank"
	ColCreatedAt = "created_at"
	ColUpdatedAt = "updated_at"
)

// Table addresses one reference list table.
type Table struct {
	Name    string
	NameCol string
}

// Columns lists the columns in the order row readers scan them.
func (t Table) Columns() []string {
	return []string{ColItemID, t.NameCol, ColSortRank, ColCreatedAt, ColUpdatedAt}
}

// ItemColumns are the columns the engine reads back: id, name and rank.
func (t Table) ItemColumns() []string {
	return []string{ColItemID, t.NameCol, ColSortRank}
}
