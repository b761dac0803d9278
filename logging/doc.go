// Package logging provides a tiny abstraction over slog so the memory core
// can depend on a minimal interface (Logger) while allowing users to plug
// any structured logger. It also offers a richer PlayerMindLogger with
// contextual helpers (component, player) and domain specific helpers for
// summarizer calls and persistence outcomes.
package logging
