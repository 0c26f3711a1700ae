package reconcile_list

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
)

func TestParseBatch_TrimsNamesAndKeepsOptionalFields(t *testing.T) {
	b, err := ParseBatch([]byte(`{
		"added": [{"name": "  Peppermint ", "tempId": "t1"}, {"name": "Sage"}],
		"edited": [{"id": "abc", "name": "\tEucalyptus\n"}],
		"deleted": ["y"],
		"visualOrder": [{"tempId": "t1"}, {"id": "abc"}, {"name": " Sage "}]
	}`))
	require.NoError(t, err)

	require.Len(t, b.Added, 2)
	assert.Equal(t, "Peppermint", b.Added[0].Name)
	require.NotNil(t, b.Added[0].TempID)
	assert.Equal(t, "t1", *b.Added[0].TempID)
	assert.Nil(t, b.Added[1].TempID)

	assert.Equal(t, "Eucalyptus", b.Edited[0].Name)
	assert.Equal(t, []string{"y"}, b.Deleted)

	require.Len(t, b.VisualOrder, 3)
	assert.Nil(t, b.VisualOrder[0].ID)
	assert.Equal(t, "abc", *b.VisualOrder[1].ID)
	assert.Equal(t, "Sage", *b.VisualOrder[2].Name)
}

func TestParseBatch_MissingArraysAreEmpty(t *testing.T) {
	b, err := ParseBatch([]byte(`{"deleted": []}`))
	require.NoError(t, err)
	assert.Empty(t, b.Added)
	assert.Empty(t, b.Edited)
	assert.Empty(t, b.Deleted)
	assert.Empty(t, b.VisualOrder)
	assert.True(t, b.IsEmpty())
}

func TestParseBatch_EmptyTempIDIsPresent(t *testing.T) {
	b, err := ParseBatch([]byte(`{"added": [{"name": "Basil", "tempId": ""}]}`))
	require.NoError(t, err)
	require.NotNil(t, b.Added[0].TempID)
	assert.Equal(t, "", *b.Added[0].TempID)
}

func TestParseBatch_Malformed(t *testing.T) {
	for name, raw := range map[string]string{
		"empty body":    "  ",
		"not json":      "added=1",
		"wrong shape":   `{"added": "Basil"}`,
		"array":         `[]`,
		"trailing data": `{} {}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseBatch([]byte(raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedBatch)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "parse", verr.Phase)
		})
	}
}

func TestIDResolver_FirstRegistrationWins(t *testing.T) {
	r := newIDResolver()
	assert.True(t, r.register("t1", "id-1"))
	assert.False(t, r.register("t1", "id-2"))
	assert.True(t, r.register("", "id-3"))

	id, ok := r.resolve("t1")
	assert.True(t, ok)
	assert.Equal(t, "id-1", id)

	_, ok = r.resolve("t2")
	assert.False(t, ok)
	assert.Equal(t, 2, r.len())
}
