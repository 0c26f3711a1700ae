package m_listitem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var oils = Table{Name: "essential_oils", NameCol: "oil_name"}

func TestBuildInsertMap(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	values := oils.BuildInsertMap("id-1", "Lavender", -1, now)

	assert.Len(t, values, len(oils.Columns()))
	assert.Equal(t, "id-1", values[ColItemID])
	assert.Equal(t, "Lavender", values["oil_name"])
	assert.Equal(t, int64(-1), values[ColSortRank])
	assert.Equal(t, now, values[ColCreatedAt])
	assert.Equal(t, now, values[ColUpdatedAt])

	require.NotNil(t, oils.InsertMutation(values))
}

func TestBuildUpdateMap(t *testing.T) {
	now := time.Now().UTC()

	assert.Nil(t, oils.BuildUpdateMap(nil, nil, now))
	assert.Nil(t, oils.UpdateMutation("id-1", nil))

	rank := int64(4)
	values := oils.BuildUpdateMap(nil, &rank, now)
	assert.Equal(t, map[string]interface{}{ColSortRank: int64(4), ColUpdatedAt: now}, values)

	name := "Rose"
	values = oils.BuildUpdateMap(&name, nil, now)
	assert.Equal(t, "Rose", values["oil_name"])
	_, hasRank := values[ColSortRank]
	assert.False(t, hasRank)

	require.NotNil(t, oils.UpdateMutation("id-1", values))
	require.NotNil(t, oils.DeleteMutation("id-1"))
}

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{"item_id", "oil_name", "sort_rank", "created_at", "updated_at"}, oils.Columns())
	assert.Equal(t, []string{"item_id", "oil_name", "sort_rank"}, oils.ItemColumns())
}
