package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playermind/playermind/core"
	"github.com/playermind/playermind/internal/testutil"
)

func TestFactStoreMergeDedup(t *testing.T) {
	store := NewFactStore()

	inserted := store.Merge([]core.Fact{
		testutil.NewFact("Steve", core.FactPreference, "likes oak wood"),
		testutil.NewFact("Steve", core.FactPreference, "Likes  OAK wood"), // same identity
		testutil.NewFact("Steve", core.FactAchievement, "likes oak wood"), // different category
	})

	assert.Equal(t, 2, inserted)
	assert.Equal(t, 2, store.Len())
}

func TestFactStoreMergeIdempotent(t *testing.T) {
	candidates := []core.Fact{
		testutil.NewFact("Steve", core.FactPreference, "likes oak wood"),
		testutil.NewFact("Steve", core.FactBuildingProject, "castle on the hill"),
	}

	store := NewFactStore()
	require.Equal(t, 2, store.Merge(candidates))
	require.Equal(t, 0, store.Merge(candidates))
	assert.Equal(t, 2, store.Len())
}

func TestFactStoreExistingWins(t *testing.T) {
	store := NewFactStore()
	first := testutil.NewFact("Steve", core.FactPreference, "likes oak wood")
	store.Merge([]core.Fact{first})

	later := testutil.NewFact("Steve", core.FactPreference, "LIKES OAK WOOD")
	later.CreatedAt = later.CreatedAt.AddDate(0, 0, 1)
	store.Merge([]core.Fact{later})

	facts := store.Facts()
	require.Len(t, facts, 1)
	assert.Equal(t, first.Text, facts[0].Text, "existing fact must not be overwritten")
	assert.Equal(t, first.CreatedAt, facts[0].CreatedAt)
}

func TestFactStoreInsertionOrder(t *testing.T) {
	store := NewFactStore()
	store.Merge([]core.Fact{testutil.NewFact("Steve", core.FactPreference, "b")})
	store.Merge([]core.Fact{testutil.NewFact("Steve", core.FactPreference, "a")})
	store.Merge([]core.Fact{testutil.NewFact("Steve", core.FactPreference, "c")})

	facts := store.Facts()
	require.Len(t, facts, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{facts[0].Text, facts[1].Text, facts[2].Text})
}

func TestFactStoreClear(t *testing.T) {
	store := NewFactStore()
	store.Merge([]core.Fact{testutil.NewFact("Steve", core.FactPreference, "likes oak wood")})
	store.Clear()
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.Facts())
}
