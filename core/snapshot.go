package core

import "time"

// SnapshotVersion is the current on-disk snapshot schema version.
const SnapshotVersion = 1

// PlayerSnapshot is the persisted state of a single player: the bounded
// recent-event sequence, the deduplicated fact set and the consolidation
// counter.
type PlayerSnapshot struct {
	Events                   []Event    `json:"events"`
	Facts                    []Fact     `json:"facts"`
	EventsSinceConsolidation int        `json:"events_since_consolidation"`
	LastConsolidation        *time.Time `json:"last_consolidation,omitempty"`
}

// Snapshot is the complete in-memory/on-disk state of all players' events,
// facts and counters. It is the unit of persistence; stores serialize it
// as a single structured document.
type Snapshot struct {
	Version           int                        `json:"version"`
	CreatedAt         time.Time                  `json:"created_at"`
	Players           map[string]*PlayerSnapshot `json:"players"`
	TotalEvents       int                        `json:"total_events"`
	ConsolidationsRun int                        `json:"consolidations_run"`
}

// NewSnapshot creates an empty snapshot stamped with a UTC creation time.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Version:   SnapshotVersion,
		CreatedAt: time.Now().UTC(),
		Players:   make(map[string]*PlayerSnapshot),
	}
}

// Player returns the snapshot entry for name, allocating an empty one if
// the player has not been seen before.
func (s *Snapshot) Player(name string) *PlayerSnapshot {
	ps, ok := s.Players[name]
	if !ok {
		ps = &PlayerSnapshot{}
		s.Players[name] = ps
	}
	return ps
}

// Clone performs a deep copy so callers can hand the snapshot across
// goroutine or store boundaries without aliasing live state.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Version:           s.Version,
		CreatedAt:         s.CreatedAt,
		Players:           make(map[string]*PlayerSnapshot, len(s.Players)),
		TotalEvents:       s.TotalEvents,
		ConsolidationsRun: s.ConsolidationsRun,
	}
	for name, ps := range s.Players {
		cp := &PlayerSnapshot{
			Events:                   make([]Event, len(ps.Events)),
			Facts:                    make([]Fact, len(ps.Facts)),
			EventsSinceConsolidation: ps.EventsSinceConsolidation,
		}
		copy(cp.Events, ps.Events)
		for i := range cp.Events {
			cp.Events[i].Payload = clonePayload(ps.Events[i].Payload)
		}
		copy(cp.Facts, ps.Facts)
		if ps.LastConsolidation != nil {
			t := *ps.LastConsolidation
			cp.LastConsolidation = &t
		}
		c.Players[name] = cp
	}
	return c
}

func clonePayload(p map[string]string) map[string]string {
	if p == nil {
		return nil
	}
	c := make(map[string]string, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}
