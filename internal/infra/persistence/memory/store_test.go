package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contracts "github.com/murkotick/reflist-service/internal/app/reflist/contracts"
	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
)

func TestStore_InsertFindUpdateDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore(domain.OilList)

	id, err := s.InsertOne(ctx, domain.Item{Name: "Lavender", Rank: domain.RankUnplaced})
	require.NoError(t, err)
	assert.True(t, domain.ValidID(id))

	got, err := s.FindOne(ctx, contracts.ByName("Lavender"))
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, domain.RankUnplaced, got.Rank)

	rank := 3
	matched, err := s.UpdateOne(ctx, contracts.ByID(id), contracts.Patch{Rank: &rank})
	require.NoError(t, err)
	assert.True(t, matched)

	got, err = s.FindOne(ctx, contracts.ByID(id))
	require.NoError(t, err)
	assert.Equal(t, 3, got.Rank)
	assert.Equal(t, "Lavender", got.Name)

	deleted, err := s.DeleteOne(ctx, contracts.ByID(id))
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.FindOne(ctx, contracts.ByID(id))
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	deleted, err = s.DeleteOne(ctx, contracts.ByID(id))
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStore_UnplacedByNameIgnoresRankedItems(t *testing.T) {
	ctx := context.Background()
	s := NewStore(domain.OilList)
	s.Seed(domain.Item{Name: "Rose", Rank: 0})

	_, err := s.FindOne(ctx, contracts.UnplacedByName("Rose"))
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestStore_NameMatchingFollowsListSpec(t *testing.T) {
	ctx := context.Background()

	sensitive := NewStore(domain.OilList)
	sensitive.Seed(domain.Item{Name: "Lavender", Rank: 0})
	_, err := sensitive.FindOne(ctx, contracts.ByName("lavender"))
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	spec := domain.OilList
	spec.CaseInsensitiveNames = true
	folded := NewStore(spec)
	folded.Seed(domain.Item{Name: "Lavender", Rank: 0})
	got, err := folded.FindOne(ctx, contracts.ByName("lavender"))
	require.NoError(t, err)
	assert.Equal(t, "Lavender", got.Name)
}

func TestStore_UniqueNameGuard(t *testing.T) {
	ctx := context.Background()
	s := NewStore(domain.IndustryList)
	seeded := s.Seed(domain.Item{Name: "Retail", Rank: 0}, domain.Item{Name: "Finance", Rank: 1})

	_, err := s.InsertOne(ctx, domain.Item{Name: "Retail", Rank: domain.RankUnplaced})
	require.Error(t, err)

	name := "Retail"
	_, err = s.UpdateOne(ctx, contracts.ByID(seeded[1].ID), contracts.Patch{Name: &name})
	require.Error(t, err)

	// Renaming an item to its own name is not a collision.
	name = "Finance"
	matched, err := s.UpdateOne(ctx, contracts.ByID(seeded[1].ID), contracts.Patch{Name: &name})
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestStore_RunInTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore(domain.DeviceModelList)
	s.Seed(domain.Item{Name: "X100", Rank: 0})

	boom := errors.New("boom")
	err := s.RunInTransaction(ctx, func(ctx context.Context, repo contracts.ItemRepo) error {
		_, err := repo.InsertOne(ctx, domain.Item{Name: "X200", Rank: domain.RankUnplaced})
		require.NoError(t, err)

		// Writes are visible inside the transaction.
		_, err = repo.FindOne(ctx, contracts.ByName("X200"))
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "X100", items[0].Name)
}

func TestStore_RunInTransactionCommits(t *testing.T) {
	ctx := context.Background()
	s := NewStore(domain.DeviceModelList)

	err := s.RunInTransaction(ctx, func(ctx context.Context, repo contracts.ItemRepo) error {
		_, err := repo.InsertOne(ctx, domain.Item{Name: "X200", Rank: domain.RankUnplaced})
		return err
	})
	require.NoError(t, err)
	assert.Len(t, s.Items(), 1)
}

func TestStore_ListItemsOrdersByRankThenName(t *testing.T) {
	s := NewStore(domain.OilList)
	s.Seed(
		domain.Item{Name: "Tea Tree", Rank: 1},
		domain.Item{Name: "Lavender", Rank: 0},
		domain.Item{Name: "Eucalyptus", Rank: 1},
	)

	items, err := s.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Lavender", items[0].Name)
	assert.Equal(t, "Eucalyptus", items[1].Name)
	assert.Equal(t, "Tea Tree", items[2].Name)
}

func TestStore_WithIDGenerator(t *testing.T) {
	n := 0
	s := NewStore(domain.OilList, WithIDGenerator(func() string {
		n++
		return []string{"a", "b"}[n-1]
	}))

	id, err := s.InsertOne(context.Background(), domain.Item{Name: "Rose", Rank: -1})
	require.NoError(t, err)
	assert.Equal(t, "a", id)
}

func TestEventLog_RecordsInOrder(t *testing.T) {
	l := NewEventLog(nil)
	evs := []domain.ListEvent{
		&domain.ItemAddedEvent{ListKey: domain.ListOils, ItemID: "1", Name: "Rose"},
		&domain.ItemDeletedEvent{ListKey: domain.ListOils, ItemID: "2", Name: "Mint"},
	}
	require.NoError(t, l.Publish(context.Background(), evs))

	got := l.Events()
	require.Len(t, got, 2)
	assert.Equal(t, "reflist.item_added", got[0].EventType())
	assert.Equal(t, "reflist.item_deleted", got[1].EventType())

	l.Reset()
	assert.Empty(t, l.Events())
}
