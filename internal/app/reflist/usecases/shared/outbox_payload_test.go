package shared

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/models/m_outbox"
)

func TestMarshalEventPayload_Reordered(t *testing.T) {
	ev := &domain.ListReorderedEvent{
		ListKey:     domain.ListIndustries,
		Assignments: []domain.RankAssignment{{ItemID: "a", Rank: 0}, {ItemID: "b", Rank: 2}},
		ReorderedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	raw, err := MarshalEventPayload(ev)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, "industries", got["list"])
	ranks := got["ranks"].([]interface{})
	require.Len(t, ranks, 2)
	assert.Equal(t, "b", ranks[1].(map[string]interface{})["item_id"])
	assert.EqualValues(t, 2, ranks[1].(map[string]interface{})["rank"])
}

func TestMarshalEventPayload_AddedOmitsMissingTempID(t *testing.T) {
	raw, err := MarshalEventPayload(&domain.ItemAddedEvent{ListKey: domain.ListOils, ItemID: "x", Name: "Rose"})
	require.NoError(t, err)
	assert.NotContains(t, raw, "temp_id")

	tmp := "t1"
	raw, err = MarshalEventPayload(&domain.ItemAddedEvent{ListKey: domain.ListOils, ItemID: "x", Name: "Rose", TempID: &tmp})
	require.NoError(t, err)
	assert.Contains(t, raw, `"temp_id":"t1"`)
}

func TestMarshalEventPayload_Nil(t *testing.T) {
	raw, err := MarshalEventPayload(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", raw)
}

func TestBuildOutboxMap(t *testing.T) {
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	values, err := BuildOutboxMap(&domain.ItemDeletedEvent{ListKey: domain.ListDeviceModels, ItemID: "id-9", Name: "X1", DeletedAt: at})
	require.NoError(t, err)

	assert.Equal(t, "reflist.item_deleted", values[m_outbox.ColEventType])
	assert.Equal(t, "device-models", values[m_outbox.ColListKey])
	assert.Equal(t, "id-9", values[m_outbox.ColAggregateID])
	assert.Equal(t, at.UTC(), values[m_outbox.ColCreatedAt])
	assert.True(t, domain.ValidID(values[m_outbox.ColEventID].(string)))
}
