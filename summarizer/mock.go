package summarizer

import (
	"context"
	"sync"

	"github.com/playermind/playermind/core"
)

// Mock is a scripted in-memory core.Summarizer useful for tests and
// examples. Queue candidate batches with AddCandidates and errors with
// AddError; batches are consumed in FIFO order and an empty queue yields
// no candidates. Safe for concurrent use.
type Mock struct {
	mu      sync.Mutex
	batches []batch
	calls   int
}

type batch struct {
	facts []core.Fact
	err   error
}

var _ core.Summarizer = (*Mock)(nil)

// NewMock constructs an empty mock summarizer.
func NewMock() *Mock { return &Mock{} }

// AddCandidates queues a batch of candidate facts for a future call.
func (m *Mock) AddCandidates(facts ...core.Fact) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, batch{facts: facts})
	return m
}

// AddError queues a failing call.
func (m *Mock) AddError(err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, batch{err: err})
	return m
}

// Calls returns how many times Summarize has been invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Summarize implements core.Summarizer.
func (m *Mock) Summarize(ctx context.Context, window []core.Event, existing []core.Fact) ([]core.Fact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if len(m.batches) == 0 {
		return nil, nil
	}
	b := m.batches[0]
	m.batches = m.batches[1:]
	if b.err != nil {
		return nil, b.err
	}
	out := make([]core.Fact, len(b.facts))
	copy(out, b.facts)
	return out, nil
}
