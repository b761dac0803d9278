package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/playermind/playermind/core"
)

// InMemoryStore is a volatile SnapshotStore keeping the snapshot in
// process memory. It is safe for concurrent access and best suited for
// tests or ephemeral demo servers. Snapshots are deep-cloned on both
// sides so callers never alias internal state.
type InMemoryStore struct {
	mu   sync.RWMutex
	snap *core.Snapshot
}

var _ core.SnapshotStore = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory snapshot store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Load returns a clone of the stored snapshot, or an empty one.
func (s *InMemoryStore) Load() (*core.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return core.NewSnapshot(), nil
	}
	return s.snap.Clone(), nil
}

// Save stores a clone of the snapshot.
func (s *InMemoryStore) Save(snapshot *core.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("nil snapshot")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snapshot.Clone()
	return nil
}

// Export writes the snapshot as JSON to path, matching FileStore behavior
// so exports from demo setups remain readable by the file store.
func (s *InMemoryStore) Export(snapshot *core.Snapshot, path string) error {
	if snapshot == nil {
		return fmt.Errorf("nil snapshot")
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
