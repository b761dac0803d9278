// Package playermind provides a high-level façade over the memory
// subsystem (event log, fact store, consolidation, persistence) for
// building AI game companions that remember their players. Most
// applications interact with this package by:
//  1. Creating a PlayerMind via New() (optionally overriding the default
//     in-memory store, the summarizer and the logger)
//  2. Recording gameplay events as they arrive (RecordEvent)
//  3. Requesting the assembled context when generating a response (Context)
//
// The façade delegates to memory.Manager while keeping setup ergonomics
// concise. The defaults (volatile store, no summarizer, no-op logger) are
// safe for local development and testing; production deployments supply a
// persist.FileStore, a summarizer provider and a structured logger.
package playermind

import (
	"context"

	"github.com/playermind/playermind/core"
	"github.com/playermind/playermind/logging"
	"github.com/playermind/playermind/memory"
	"github.com/playermind/playermind/persist"
)

// Options configures the PlayerMind instance.
type Options struct {
	// Config carries the memory tunables (limits, interval, window, timeout).
	Config core.Config

	// Store persists the memory snapshot (defaults to a volatile in-memory
	// store if not provided).
	Store core.SnapshotStore

	// Summarizer performs consolidation. Nil disables consolidation
	// triggers; ForceConsolidate then fails with memory.ErrNoSummarizer.
	Summarizer core.Summarizer

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// PlayerMind is the high-level façade aggregating the memory manager and
// its collaborators.
type PlayerMind struct {
	opts    Options
	manager *memory.Manager
}

// New creates a new PlayerMind instance with optional overrides. The
// snapshot is loaded through the store during construction.
func New(optFns ...func(o *Options)) (*PlayerMind, error) {
	opts := Options{
		Config: core.DefaultConfig(),
		Store:  persist.NewInMemoryStore(),
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	mgr, err := memory.NewManager(opts.Config, opts.Store, opts.Summarizer, opts.Logger)
	if err != nil {
		return nil, err
	}
	return &PlayerMind{opts: opts, manager: mgr}, nil
}

// Manager exposes the underlying memory manager for callers that need the
// full surface (the HTTP layer wires against this).
func (p *PlayerMind) Manager() *memory.Manager { return p.manager }

// RecordEvent appends a gameplay event for player, consolidating and
// persisting as required.
func (p *PlayerMind) RecordEvent(ctx context.Context, player string, kind core.EventKind, payload map[string]string) (core.Event, error) {
	return p.manager.RecordEvent(ctx, player, kind, payload)
}

// Context returns the bounded context (recent events + facts) for player.
func (p *PlayerMind) Context(ctx context.Context, player string) core.Context {
	return p.manager.Context(ctx, player)
}

// Facts returns the player's long-term facts.
func (p *PlayerMind) Facts(player string) []core.Fact { return p.manager.Facts(player) }

// Recent returns up to n recent events for the player.
func (p *PlayerMind) Recent(player string, n int) []core.Event { return p.manager.Recent(player, n) }

// ForceConsolidate runs consolidation for player regardless of the
// interval counter.
func (p *PlayerMind) ForceConsolidate(ctx context.Context, player string) error {
	return p.manager.ForceConsolidate(ctx, player)
}

// Status reports counts over the whole memory system.
func (p *PlayerMind) Status() core.Stats { return p.manager.Status() }

// ClearShortTerm clears the recent-event log for player, or for everyone
// when player is empty. Facts are kept.
func (p *PlayerMind) ClearShortTerm(player string) error { return p.manager.ClearShortTerm(player) }

// ClearAll wipes all events and facts for every player.
func (p *PlayerMind) ClearAll() error { return p.manager.ClearAll() }

// Export writes an independent snapshot copy to path.
func (p *PlayerMind) Export(path string) error { return p.manager.Export(path) }

// Flush persists the current snapshot; call before shutdown.
func (p *PlayerMind) Flush() error { return p.manager.Flush() }
