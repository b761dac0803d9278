package persist

import "errors"

var (
	// ErrSnapshotRecovered signals that the primary snapshot file was
	// unreadable and the returned snapshot came from the backup slot. The
	// accompanying snapshot is valid; treat this as a warning, events
	// written after the backup was taken are lost.
	ErrSnapshotRecovered = errors.New("snapshot recovered from backup")

	// ErrSnapshotReset signals that both the primary snapshot and its
	// backup were unreadable and an empty snapshot was returned. Treat as
	// a warning; the previous memory contents are lost.
	ErrSnapshotReset = errors.New("snapshot reset, primary and backup unreadable")
)
