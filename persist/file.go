package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/playermind/playermind/core"
)

// FileStore persists the memory snapshot as a single JSON document.
//
// Save is atomic with respect to process crash: the snapshot is written to
// a temporary file in the same directory, the previous primary file is
// rotated into a single backup slot (<path>.bak), then the temporary file
// is renamed over the primary. At any point in time either the old or the
// new snapshot is readable from primary or backup.
//
// Load degrades instead of failing: a missing file yields an empty
// snapshot, a corrupt primary falls back to the backup
// (ErrSnapshotRecovered), and if both are unreadable an empty snapshot is
// returned with ErrSnapshotReset. The returned snapshot is always usable.
//
// FileStore itself performs no locking; the memory manager serializes
// Save calls.
type FileStore struct {
	path string
}

var _ core.SnapshotStore = (*FileStore)(nil)

// NewFileStore creates a store writing to path. The parent directory is
// created on the first Save if it does not exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the primary snapshot path.
func (s *FileStore) Path() string { return s.path }

// BackupPath returns the single-slot backup path.
func (s *FileStore) BackupPath() string { return s.path + ".bak" }

// Load reads the snapshot, recovering from the backup on corruption.
func (s *FileStore) Load() (*core.Snapshot, error) {
	snap, err := readSnapshot(s.path)
	if err == nil {
		return snap, nil
	}
	if os.IsNotExist(err) {
		return core.NewSnapshot(), nil
	}

	backup, backupErr := readSnapshot(s.BackupPath())
	if backupErr == nil {
		return backup, fmt.Errorf("%w: primary unreadable: %v", ErrSnapshotRecovered, err)
	}
	return core.NewSnapshot(), fmt.Errorf("%w: primary: %v, backup: %v", ErrSnapshotReset, err, backupErr)
}

// Save writes the snapshot atomically and rotates the previous primary
// into the backup slot.
func (s *FileStore) Save(snapshot *core.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("nil snapshot")
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	// Rotate the current primary into the backup slot before replacement.
	if _, err := os.Stat(s.path); err == nil {
		if err := os.Rename(s.path, s.BackupPath()); err != nil {
			return fmt.Errorf("rotate backup: %w", err)
		}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Export writes an independent copy of the snapshot to path. The primary
// file and backup rotation are not touched.
func (s *FileStore) Export(snapshot *core.Snapshot, path string) error {
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

func readSnapshot(path string) (*core.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap core.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if snap.Players == nil {
		snap.Players = make(map[string]*core.PlayerSnapshot)
	}
	return &snap, nil
}
