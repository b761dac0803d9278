// Package memory implements the per-player memory subsystem: the bounded
// recent-event log, the deduplicated fact store, the consolidation engine
// that turns recent events into long-term facts via a core.Summarizer, the
// context assembler and the Manager façade tying them together.
//
// EventLog, FactStore and ContextAssembler are plain data structures with
// no locking of their own; Manager owns one EventLog/FactStore pair per
// player and guards them with a per-player two-lock scheme (see Manager)
// so that mutations are serialized per player while fact reads stay
// available during a pending summarizer call.
package memory
