package memory

import "github.com/playermind/playermind/core"

// FactStore is the deduplicated long-term fact collection for a single
// player. Identity is (category, normalized text); on a key collision the
// existing fact wins and the candidate is discarded, which makes Merge
// idempotent. Insertion order is preserved for stable reads.
//
// Not safe for concurrent use; the Manager serializes access.
type FactStore struct {
	byKey map[string]core.Fact
	order []string
}

// NewFactStore creates an empty fact store.
func NewFactStore() *FactStore {
	return &FactStore{byKey: make(map[string]core.Fact)}
}

// Merge inserts every candidate whose identity key is not already present
// and returns the number of facts actually inserted.
func (s *FactStore) Merge(candidates []core.Fact) int {
	inserted := 0
	for _, f := range candidates {
		key := f.Key()
		if _, exists := s.byKey[key]; exists {
			continue
		}
		s.byKey[key] = f
		s.order = append(s.order, key)
		inserted++
	}
	return inserted
}

// Facts returns all facts in insertion order. The returned slice is a copy.
func (s *FactStore) Facts() []core.Fact {
	out := make([]core.Fact, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.byKey[key])
	}
	return out
}

// Len returns the number of stored facts.
func (s *FactStore) Len() int { return len(s.order) }

// Clear removes every fact.
func (s *FactStore) Clear() {
	s.byKey = make(map[string]core.Fact)
	s.order = nil
}
