package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/playermind/playermind/core"
	"github.com/playermind/playermind/logging"
)

// playerMemory bundles one player's components with the two-lock scheme:
//
//   - gate serializes the mutation path (append, consolidate, clear) and
//     is held across the summarizer round trip, so there is a single
//     active mutation per player at any time.
//   - mu guards the data itself. Consolidation reads its inputs under an
//     RLock, releases it for the summarizer call, then applies merge and
//     counter reset as one step under the write lock. Fact and context
//     reads therefore observe the pre-consolidation state while the call
//     is pending, never a partial merge.
type playerMemory struct {
	gate sync.Mutex
	mu   sync.RWMutex

	log               *EventLog
	facts             *FactStore
	pending           int // events since last successful consolidation
	lastConsolidation time.Time
}

// Manager is the memory façade other subsystems call. It owns the
// per-player event logs and fact stores, triggers consolidation, and keeps
// the on-disk snapshot converged with the in-memory state after every
// mutating operation. Construct it at startup with NewManager and call
// Flush before shutdown.
type Manager struct {
	cfg          core.Config
	store        core.SnapshotStore
	consolidator *Consolidator
	assembler    ContextAssembler
	logger       logging.Logger

	mu                sync.RWMutex // guards players map and global counters
	players           map[string]*playerMemory
	totalEvents       int
	consolidationsRun int
	createdAt         time.Time

	saveMu sync.Mutex // serializes snapshot writes
}

// NewManager loads the snapshot from store and returns a ready manager.
// A recoverable load condition (corrupt primary recovered from backup, or
// full reset) is logged as a warning, not returned as a failure. The
// summarizer may be nil; consolidation is then skipped on triggers and
// ForceConsolidate fails with ErrNoSummarizer.
func NewManager(cfg core.Config, store core.SnapshotStore, summarizer core.Summarizer, logger logging.Logger) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("snapshot store is required")
	}
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	snap, err := store.Load()
	if snap == nil {
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		snap = core.NewSnapshot()
	} else if err != nil {
		logger.Warn("snapshot loaded with data loss", "error", err)
	}

	m := &Manager{
		cfg:          cfg,
		store:        store,
		consolidator: NewConsolidator(summarizer, cfg, logger),
		assembler:    NewContextAssembler(cfg.ContextWindow),
		logger:       logger,
		players:      make(map[string]*playerMemory),
		createdAt:    snap.CreatedAt,
	}
	m.restore(snap)
	return m, nil
}

// restore rebuilds the per-player components from a loaded snapshot,
// re-applying the short-term bound in case the limit shrank between runs.
func (m *Manager) restore(snap *core.Snapshot) {
	m.totalEvents = snap.TotalEvents
	m.consolidationsRun = snap.ConsolidationsRun
	for name, ps := range snap.Players {
		p := m.newPlayerMemory()
		for _, ev := range ps.Events {
			p.log.Append(ev)
		}
		p.facts.Merge(ps.Facts)
		p.pending = ps.EventsSinceConsolidation
		if ps.LastConsolidation != nil {
			p.lastConsolidation = *ps.LastConsolidation
		}
		m.players[name] = p
	}
}

func (m *Manager) newPlayerMemory() *playerMemory {
	return &playerMemory{log: NewEventLog(m.cfg.ShortTermLimit), facts: NewFactStore()}
}

// player returns the memory for name, creating it on first use.
func (m *Manager) player(name string) *playerMemory {
	m.mu.RLock()
	p, ok := m.players[name]
	m.mu.RUnlock()
	if ok {
		return p
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok = m.players[name]; ok {
		return p
	}
	p = m.newPlayerMemory()
	m.players[name] = p
	return p
}

// lookup returns the memory for name without creating it.
func (m *Manager) lookup(name string) (*playerMemory, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[name]
	return p, ok
}

// RecordEvent appends an event to the player's log, runs consolidation if
// the interval has been reached, and persists the snapshot. The returned
// error is a persistence failure only; summarizer failures are swallowed
// here (logged, counter untouched) and retried on the next trigger.
func (m *Manager) RecordEvent(ctx context.Context, player string, kind core.EventKind, payload map[string]string) (core.Event, error) {
	if player == "" {
		return core.Event{}, fmt.Errorf("player is required")
	}
	if !kind.Valid() {
		return core.Event{}, fmt.Errorf("unknown event kind %q", kind)
	}
	ev := core.NewEvent(player, kind, payload)

	p := m.player(player)
	p.gate.Lock()
	defer p.gate.Unlock()

	p.mu.Lock()
	p.log.Append(ev)
	p.pending++
	pending := p.pending
	p.mu.Unlock()

	m.mu.Lock()
	m.totalEvents++
	m.mu.Unlock()

	if pending >= m.cfg.ConsolidationInterval && m.consolidator.Enabled() {
		if err := m.consolidate(ctx, player, p); err != nil {
			m.logger.Warn("consolidation skipped, will retry on next trigger", "player", player, "error", err)
		}
	}

	return ev, m.persist()
}

// consolidate runs one consolidation cycle for p. Caller must hold p.gate.
func (m *Manager) consolidate(ctx context.Context, player string, p *playerMemory) error {
	windowSize := m.cfg.SummarizerWindow
	p.mu.RLock()
	if windowSize <= 0 || windowSize > p.log.Len() {
		windowSize = p.log.Len()
	}
	window := p.log.Recent(windowSize)
	existing := p.facts.Facts()
	p.mu.RUnlock()

	candidates, err := m.consolidator.Run(ctx, player, window, existing)
	if err != nil {
		return err
	}

	// Merge and counter reset are one logical step.
	p.mu.Lock()
	inserted := p.facts.Merge(candidates)
	p.pending = 0
	p.lastConsolidation = time.Now().UTC()
	p.mu.Unlock()

	m.mu.Lock()
	m.consolidationsRun++
	m.mu.Unlock()

	m.logger.Info("memory consolidated", "player", player, "candidates", len(candidates), "inserted", inserted)
	return nil
}

// ForceConsolidate bypasses the interval check and always invokes the
// summarizer, subject to the same merge and failure rules as a triggered
// consolidation.
func (m *Manager) ForceConsolidate(ctx context.Context, player string) error {
	if player == "" {
		return fmt.Errorf("player is required")
	}
	p := m.player(player)
	p.gate.Lock()
	defer p.gate.Unlock()

	if err := m.consolidate(ctx, player, p); err != nil {
		return err
	}
	return m.persist()
}

// Context builds the bounded context for player. If a consolidation
// trigger is still outstanding for the player (a previous attempt failed),
// it is retried first so the context never reflects a stale counter; a
// renewed failure degrades to the pre-consolidation state.
func (m *Manager) Context(ctx context.Context, player string) core.Context {
	p, ok := m.lookup(player)
	if !ok {
		return core.Context{Player: player}
	}

	p.mu.RLock()
	pending := p.pending
	p.mu.RUnlock()
	if pending >= m.cfg.ConsolidationInterval && m.consolidator.Enabled() {
		p.gate.Lock()
		p.mu.RLock()
		pending = p.pending
		p.mu.RUnlock()
		if pending >= m.cfg.ConsolidationInterval {
			if err := m.consolidate(ctx, player, p); err != nil {
				m.logger.Warn("pre-context consolidation failed", "player", player, "error", err)
			} else if err := m.persist(); err != nil {
				m.logger.Error("persist after consolidation failed", "error", err)
			}
		}
		p.gate.Unlock()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return m.assembler.Build(player, p.log, p.facts)
}

// Facts returns the player's long-term facts in insertion order.
func (m *Manager) Facts(player string) []core.Fact {
	p, ok := m.lookup(player)
	if !ok {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.facts.Facts()
}

// Recent returns up to n recent events for the player, most recent last.
// n <= 0 means the full short-term buffer.
func (m *Manager) Recent(player string, n int) []core.Event {
	p, ok := m.lookup(player)
	if !ok {
		return nil
	}
	if n <= 0 {
		n = m.cfg.ShortTermLimit
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.log.Recent(n)
}

// Status reports counts over the whole memory system.
func (m *Manager) Status() core.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := core.Stats{
		EventsPerPlayer:   make(map[string]int, len(m.players)),
		FactsPerCategory:  make(map[core.FactCategory]int),
		TotalEvents:       m.totalEvents,
		ConsolidationsRun: m.consolidationsRun,
		CreatedAt:         m.createdAt,
	}
	for _, cat := range core.FactCategories() {
		stats.FactsPerCategory[cat] = 0
	}
	for name, p := range m.players {
		p.mu.RLock()
		stats.EventsPerPlayer[name] = p.log.Len()
		for _, f := range p.facts.Facts() {
			stats.FactsPerCategory[f.Category]++
			stats.TotalFacts++
		}
		if !p.lastConsolidation.IsZero() {
			if stats.LastConsolidation == nil || p.lastConsolidation.After(*stats.LastConsolidation) {
				t := p.lastConsolidation
				stats.LastConsolidation = &t
			}
		}
		p.mu.RUnlock()
	}
	return stats
}

// ClearShortTerm empties the recent-event log (and outstanding
// consolidation counter) for the given player, or for every player when
// player is empty. Long-term facts are untouched.
func (m *Manager) ClearShortTerm(player string) error {
	if player != "" {
		p, ok := m.lookup(player)
		if !ok {
			return m.persist()
		}
		m.clearShortTerm(p)
		return m.persist()
	}
	m.mu.RLock()
	players := make([]*playerMemory, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, p)
	}
	m.mu.RUnlock()
	for _, p := range players {
		m.clearShortTerm(p)
	}
	return m.persist()
}

func (m *Manager) clearShortTerm(p *playerMemory) {
	p.gate.Lock()
	p.mu.Lock()
	p.log.Clear()
	p.pending = 0
	p.mu.Unlock()
	p.gate.Unlock()
}

// ClearAll wipes every player's events, facts and counters.
func (m *Manager) ClearAll() error {
	m.mu.Lock()
	m.players = make(map[string]*playerMemory)
	m.totalEvents = 0
	m.consolidationsRun = 0
	m.mu.Unlock()
	return m.persist()
}

// Flush persists the current snapshot immediately.
func (m *Manager) Flush() error { return m.persist() }

// Export writes an independent snapshot copy to path without touching the
// primary file or its backup rotation.
func (m *Manager) Export(path string) error {
	return m.store.Export(m.snapshot(), path)
}

// snapshot assembles a deep-copied snapshot of the current state.
func (m *Manager) snapshot() *core.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := core.NewSnapshot()
	snap.CreatedAt = m.createdAt
	snap.TotalEvents = m.totalEvents
	snap.ConsolidationsRun = m.consolidationsRun
	for name, p := range m.players {
		p.mu.RLock()
		ps := &core.PlayerSnapshot{
			Events:                   p.log.All(),
			Facts:                    p.facts.Facts(),
			EventsSinceConsolidation: p.pending,
		}
		if !p.lastConsolidation.IsZero() {
			t := p.lastConsolidation
			ps.LastConsolidation = &t
		}
		p.mu.RUnlock()
		snap.Players[name] = ps
	}
	return snap
}

// persist saves the snapshot through the store. Writes are serialized; a
// failure is surfaced to the caller while the in-memory state remains
// authoritative, so a later mutation retries the write.
func (m *Manager) persist() error {
	snap := m.snapshot()
	m.saveMu.Lock()
	defer m.saveMu.Unlock()
	start := time.Now()
	if err := m.store.Save(snap); err != nil {
		m.logger.Error("snapshot save failed", "duration", time.Since(start), "error", err)
		return fmt.Errorf("save snapshot: %w", err)
	}
	m.logger.Debug("snapshot saved", "duration", time.Since(start), "players", len(snap.Players))
	return nil
}
