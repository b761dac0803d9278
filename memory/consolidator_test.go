package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playermind/playermind/core"
	"github.com/playermind/playermind/internal/testutil"
	"github.com/playermind/playermind/summarizer"
)

func TestConsolidatorStampsCandidates(t *testing.T) {
	mock := summarizer.NewMock().AddCandidates(
		core.Fact{Category: core.FactPreference, Text: "likes oak wood"},
	)
	c := NewConsolidator(mock, testConfig(), nil)

	got, err := c.Run(context.Background(), "Steve", testutil.Events("Steve", 3), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Steve", got[0].Player)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestConsolidatorEmptyWindowIsNoOp(t *testing.T) {
	mock := summarizer.NewMock().AddCandidates(
		core.Fact{Category: core.FactPreference, Text: "likes oak wood"},
	)
	c := NewConsolidator(mock, testConfig(), nil)

	got, err := c.Run(context.Background(), "Steve", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, mock.Calls(), "summarizer is not invoked without events")
}

func TestConsolidatorNoSummarizer(t *testing.T) {
	c := NewConsolidator(nil, testConfig(), nil)
	_, err := c.Run(context.Background(), "Steve", testutil.Events("Steve", 1), nil)
	require.ErrorIs(t, err, ErrNoSummarizer)
}

func TestConsolidatorTimeout(t *testing.T) {
	slow := &blockingSummarizer{started: make(chan struct{}), release: make(chan struct{})}
	cfg := testConfig()
	cfg.SummarizerTimeout = 20 * time.Millisecond
	c := NewConsolidator(slow, cfg, nil)

	_, err := c.Run(context.Background(), "Steve", testutil.Events("Steve", 1), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "timeout surfaces as a summarizer failure")
}

func TestConsolidatorDropsMalformed(t *testing.T) {
	mock := summarizer.NewMock().AddCandidates(
		core.Fact{Category: core.FactCategory("vibe"), Text: "chill"},
		core.Fact{Category: core.FactPreference, Text: " \t "},
		core.Fact{Category: core.FactAchievement, Text: "found diamonds"},
	)
	c := NewConsolidator(mock, testConfig(), nil)

	got, err := c.Run(context.Background(), "Steve", testutil.Events("Steve", 2), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "found diamonds", got[0].Text)
}
