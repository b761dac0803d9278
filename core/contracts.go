package core

import "context"

// Summarizer turns a window of recent events plus the already known facts
// into newly inferred candidate facts. Implementations are expected to
// call out to a language model; the call may suspend for a network round
// trip and must honor ctx cancellation/deadline.
//
// Candidates only need Category and Text populated; the consolidation
// engine stamps Player and CreatedAt. Implementations should drop
// malformed candidates (unknown category, empty text) themselves and only
// return an error for whole-call failures.
type Summarizer interface {
	Summarize(ctx context.Context, window []Event, existing []Fact) ([]Fact, error)
}

// SnapshotStore defines durable load/save of the memory snapshot.
//
// Contract:
//   - Load never fails hard on bad data: a missing file yields an empty
//     snapshot, a corrupt file yields the best recoverable state together
//     with a non-fatal warning error (see persist sentinel errors).
//   - Save must be atomic with respect to process crash.
//   - Export writes an independent copy without touching the primary file
//     or its backup rotation.
type SnapshotStore interface {
	Load() (*Snapshot, error)
	Save(snapshot *Snapshot) error
	Export(snapshot *Snapshot, path string) error
}
