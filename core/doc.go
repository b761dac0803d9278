// Package core contains the domain types and contracts shared across
// PlayerMind: events, facts, the memory snapshot, configuration and the
// Summarizer / SnapshotStore interfaces. Concrete implementations live in
// sibling packages (memory, persist, summarizer); depend on the core
// contracts in your code and select implementations at wiring time.
//
// Rationale: keeps domain contracts centralized while allowing pluggable
// backends (alternative summarizer providers, alternative snapshot stores)
// to be added without introducing dependency cycles.
package core
