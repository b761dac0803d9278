package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playermind/playermind/core"
	"github.com/playermind/playermind/persist"
	"github.com/playermind/playermind/summarizer"
)

func testConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.ShortTermLimit = 20
	cfg.ConsolidationInterval = 15
	cfg.ContextWindow = 5
	cfg.SummarizerTimeout = time.Second
	return cfg
}

func newTestManager(t *testing.T, sum core.Summarizer) *Manager {
	t.Helper()
	m, err := NewManager(testConfig(), persist.NewInMemoryStore(), sum, nil)
	require.NoError(t, err)
	return m
}

func appendEvents(t *testing.T, m *Manager, player string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := m.RecordEvent(context.Background(), player, core.EventAction, map[string]string{"seq": fmt.Sprintf("%d", i)})
		require.NoError(t, err)
	}
}

func TestManagerShortTermBound(t *testing.T) {
	m := newTestManager(t, nil)
	appendEvents(t, m, "Steve", 100)
	assert.Len(t, m.Recent("Steve", 1000), 20)
}

func TestManagerConsolidationTrigger(t *testing.T) {
	mock := summarizer.NewMock().
		AddCandidates(core.Fact{Category: core.FactPreference, Text: "likes oak wood"}).
		AddCandidates(core.Fact{Category: core.FactAchievement, Text: "defeated the dragon"})
	m := newTestManager(t, mock)

	appendEvents(t, m, "Steve", 14)
	assert.Equal(t, 0, mock.Calls(), "no trigger before the interval")

	appendEvents(t, m, "Steve", 1)
	require.Equal(t, 1, mock.Calls(), "trigger fires on the 15th append")

	facts := m.Facts("Steve")
	require.Len(t, facts, 1)
	assert.Equal(t, core.FactPreference, facts[0].Category)
	assert.Equal(t, "likes oak wood", facts[0].Text)
	assert.Equal(t, "Steve", facts[0].Player, "candidate is stamped with the player")

	appendEvents(t, m, "Steve", 15)
	assert.Equal(t, 2, mock.Calls(), "exactly one trigger per interval")
	assert.Len(t, m.Facts("Steve"), 2)
}

func TestManagerConsolidationPerPlayerCounters(t *testing.T) {
	mock := summarizer.NewMock()
	m := newTestManager(t, mock)

	appendEvents(t, m, "Steve", 10)
	appendEvents(t, m, "Alex", 10)
	assert.Equal(t, 0, mock.Calls(), "counters are per player, not global")

	appendEvents(t, m, "Steve", 5)
	assert.Equal(t, 1, mock.Calls())
}

func TestManagerSummarizerFailureRetries(t *testing.T) {
	mock := summarizer.NewMock().
		AddError(errors.New("api timeout")).
		AddCandidates(core.Fact{Category: core.FactPreference, Text: "likes oak wood"})
	m := newTestManager(t, mock)

	// 15th append triggers a failing call; the counter stays put.
	appendEvents(t, m, "Steve", 15)
	require.Equal(t, 1, mock.Calls())
	assert.Empty(t, m.Facts("Steve"))

	// Next append retries and succeeds.
	appendEvents(t, m, "Steve", 1)
	require.Equal(t, 2, mock.Calls())
	assert.Len(t, m.Facts("Steve"), 1)

	// Counter was reset; no further trigger until a full interval passes.
	appendEvents(t, m, "Steve", 14)
	assert.Equal(t, 2, mock.Calls())
}

func TestManagerForceConsolidate(t *testing.T) {
	mock := summarizer.NewMock().
		AddCandidates(core.Fact{Category: core.FactBuildingProject, Text: "castle on the hill"})
	m := newTestManager(t, mock)

	appendEvents(t, m, "Steve", 3)
	require.NoError(t, m.ForceConsolidate(context.Background(), "Steve"))
	assert.Equal(t, 1, mock.Calls())
	assert.Len(t, m.Facts("Steve"), 1)

	// Counter was reset by the forced run.
	appendEvents(t, m, "Steve", 14)
	assert.Equal(t, 1, mock.Calls())
}

func TestManagerForceConsolidateNoSummarizer(t *testing.T) {
	m := newTestManager(t, nil)
	appendEvents(t, m, "Steve", 3)
	err := m.ForceConsolidate(context.Background(), "Steve")
	require.ErrorIs(t, err, ErrNoSummarizer)
}

func TestManagerMergeExistingWins(t *testing.T) {
	mock := summarizer.NewMock().
		AddCandidates(core.Fact{Category: core.FactPreference, Text: "likes oak wood"}).
		AddCandidates(core.Fact{Category: core.FactPreference, Text: "LIKES  OAK WOOD"})
	m := newTestManager(t, mock)

	require.NoError(t, m.ForceConsolidate(context.Background(), "Steve")) // no events: no-op merge
	appendEvents(t, m, "Steve", 1)
	require.NoError(t, m.ForceConsolidate(context.Background(), "Steve"))
	appendEvents(t, m, "Steve", 1)
	require.NoError(t, m.ForceConsolidate(context.Background(), "Steve"))

	facts := m.Facts("Steve")
	require.Len(t, facts, 1)
	assert.Equal(t, "likes oak wood", facts[0].Text)
}

func TestManagerContextWindow(t *testing.T) {
	m := newTestManager(t, nil)
	appendEvents(t, m, "Steve", 12)

	ctx := m.Context(context.Background(), "Steve")
	assert.Equal(t, "Steve", ctx.Player)
	require.Len(t, ctx.RecentEvents, 5)
	assert.Equal(t, "11", ctx.RecentEvents[4].Payload["seq"], "most recent last")

	unknown := m.Context(context.Background(), "Nobody")
	assert.Empty(t, unknown.RecentEvents)
	assert.Empty(t, unknown.Facts)
}

func TestManagerContextRunsOutstandingConsolidation(t *testing.T) {
	mock := summarizer.NewMock().
		AddError(errors.New("api down")).
		AddCandidates(core.Fact{Category: core.FactPreference, Text: "likes oak wood"})
	m := newTestManager(t, mock)

	appendEvents(t, m, "Steve", 15) // trigger fails, counter still >= interval
	require.Equal(t, 1, mock.Calls())

	ctx := m.Context(context.Background(), "Steve")
	assert.Equal(t, 2, mock.Calls(), "context read retries the outstanding consolidation")
	require.Len(t, ctx.Facts, 1)
	assert.Equal(t, "likes oak wood", ctx.Facts[0].Text)
}

func TestManagerClearShortTermKeepsFacts(t *testing.T) {
	mock := summarizer.NewMock().
		AddCandidates(core.Fact{Category: core.FactPreference, Text: "likes oak wood"})
	m := newTestManager(t, mock)

	appendEvents(t, m, "Steve", 15)
	require.Len(t, m.Facts("Steve"), 1)

	require.NoError(t, m.ClearShortTerm("Steve"))
	assert.Empty(t, m.Recent("Steve", 100))
	assert.Len(t, m.Facts("Steve"), 1, "facts survive a short-term clear")
}

func TestManagerClearAll(t *testing.T) {
	mock := summarizer.NewMock().
		AddCandidates(core.Fact{Category: core.FactPreference, Text: "likes oak wood"})
	m := newTestManager(t, mock)

	appendEvents(t, m, "Steve", 15)
	appendEvents(t, m, "Alex", 3)

	require.NoError(t, m.ClearAll())
	assert.Empty(t, m.Recent("Steve", 100))
	assert.Empty(t, m.Recent("Alex", 100))
	assert.Empty(t, m.Facts("Steve"))
	assert.Equal(t, 0, m.Status().TotalEvents)
}

func TestManagerStatus(t *testing.T) {
	mock := summarizer.NewMock().
		AddCandidates(
			core.Fact{Category: core.FactPreference, Text: "likes oak wood"},
			core.Fact{Category: core.FactAchievement, Text: "found diamonds"},
		)
	m := newTestManager(t, mock)

	appendEvents(t, m, "Steve", 15)
	appendEvents(t, m, "Alex", 2)

	stats := m.Status()
	assert.Equal(t, 17, stats.TotalEvents)
	assert.Equal(t, 15, stats.EventsPerPlayer["Steve"])
	assert.Equal(t, 2, stats.EventsPerPlayer["Alex"])
	assert.Equal(t, 2, stats.TotalFacts)
	assert.Equal(t, 1, stats.FactsPerCategory[core.FactPreference])
	assert.Equal(t, 1, stats.FactsPerCategory[core.FactAchievement])
	assert.Equal(t, 1, stats.ConsolidationsRun)
	require.NotNil(t, stats.LastConsolidation)
}

func TestManagerRejectsBadInput(t *testing.T) {
	m := newTestManager(t, nil)
	_, err := m.RecordEvent(context.Background(), "", core.EventChat, nil)
	require.Error(t, err)
	_, err = m.RecordEvent(context.Background(), "Steve", core.EventKind("teleport"), nil)
	require.Error(t, err)
}

func TestManagerRestartRestoresState(t *testing.T) {
	store := persist.NewInMemoryStore()
	mock := summarizer.NewMock().
		AddCandidates(core.Fact{Category: core.FactPreference, Text: "likes oak wood"})

	m1, err := NewManager(testConfig(), store, mock, nil)
	require.NoError(t, err)
	for i := 0; i < 17; i++ {
		_, err := m1.RecordEvent(context.Background(), "Steve", core.EventAction, map[string]string{"seq": fmt.Sprintf("%d", i)})
		require.NoError(t, err)
	}

	m2, err := NewManager(testConfig(), store, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, m1.Recent("Steve", 100), m2.Recent("Steve", 100))
	assert.Equal(t, m1.Facts("Steve"), m2.Facts("Steve"))
	s1, s2 := m1.Status(), m2.Status()
	assert.Equal(t, s1.TotalEvents, s2.TotalEvents)
	assert.Equal(t, s1.ConsolidationsRun, s2.ConsolidationsRun)
}

// blockingSummarizer parks inside Summarize until released, so tests can
// observe reads issued while a consolidation is pending.
type blockingSummarizer struct {
	started chan struct{}
	release chan struct{}
	result  []core.Fact
}

func (b *blockingSummarizer) Summarize(ctx context.Context, _ []core.Event, _ []core.Fact) ([]core.Fact, error) {
	close(b.started)
	select {
	case <-b.release:
		return b.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestManagerReadsSeePreConsolidationState(t *testing.T) {
	blocking := &blockingSummarizer{
		started: make(chan struct{}),
		release: make(chan struct{}),
		result:  []core.Fact{{Category: core.FactPreference, Text: "likes oak wood"}},
	}
	m := newTestManager(t, blocking)

	appendEvents(t, m, "Steve", 14)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = m.RecordEvent(context.Background(), "Steve", core.EventAction, nil)
	}()

	<-blocking.started
	assert.Empty(t, m.Facts("Steve"), "pending merge must not be visible")
	assert.Len(t, m.Recent("Steve", 100), 15, "event reads stay available during the call")

	close(blocking.release)
	<-done
	require.Len(t, m.Facts("Steve"), 1)
}

func TestManagerConcurrentPlayers(t *testing.T) {
	m := newTestManager(t, nil)
	players := []string{"Steve", "Alex", "Herobrine"}

	var wg sync.WaitGroup
	for _, player := range players {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			for i := 0; i < 40; i++ {
				_, err := m.RecordEvent(context.Background(), p, core.EventAction, map[string]string{"seq": fmt.Sprintf("%d", i)})
				assert.NoError(t, err)
				_ = m.Context(context.Background(), p)
			}
		}(player)
	}
	wg.Wait()

	for _, player := range players {
		assert.Len(t, m.Recent(player, 100), 20)
	}
	assert.Equal(t, 120, m.Status().TotalEvents)
}

func TestManagerMalformedCandidatesDropped(t *testing.T) {
	mock := summarizer.NewMock().AddCandidates(
		core.Fact{Category: core.FactPreference, Text: "likes oak wood"},
		core.Fact{Category: core.FactCategory("mood"), Text: "is grumpy"},
		core.Fact{Category: core.FactAchievement, Text: "   "},
	)
	m := newTestManager(t, mock)

	appendEvents(t, m, "Steve", 1)
	require.NoError(t, m.ForceConsolidate(context.Background(), "Steve"))

	facts := m.Facts("Steve")
	require.Len(t, facts, 1, "invalid candidates dropped, valid ones kept")
	assert.Equal(t, "likes oak wood", facts[0].Text)
}
