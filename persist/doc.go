// Package persist contains concrete SnapshotStore implementations: a
// durable single-file JSON store with crash-atomic writes and single-slot
// backup rotation, and a volatile in-memory store for tests and demos.
// The store contract lives in the core package.
package persist
