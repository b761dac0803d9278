package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playermind/playermind/core"
	"github.com/playermind/playermind/internal/testutil"
)

func TestContextAssemblerBuild(t *testing.T) {
	log := NewEventLog(20)
	for i := 0; i < 9; i++ {
		log.Append(testutil.NewEventBuilder().Detail("seq", fmt.Sprintf("%d", i)).Build())
	}
	store := NewFactStore()
	store.Merge([]core.Fact{testutil.NewFact("Steve", core.FactPreference, "likes oak wood")})

	ctx := NewContextAssembler(5).Build("Steve", log, store)

	assert.Equal(t, "Steve", ctx.Player)
	require.Len(t, ctx.RecentEvents, 5)
	assert.Equal(t, "8", ctx.RecentEvents[4].Payload["seq"], "most recent last")
	require.Len(t, ctx.Facts, 1)

	// Pure read: building again yields the same view.
	again := NewContextAssembler(5).Build("Steve", log, store)
	assert.Equal(t, ctx, again)
	assert.Equal(t, 9, log.Len())
}

func TestContextAssemblerEmptyComponents(t *testing.T) {
	ctx := NewContextAssembler(5).Build("Steve", nil, nil)
	assert.Empty(t, ctx.RecentEvents)
	assert.Empty(t, ctx.Facts)
}
