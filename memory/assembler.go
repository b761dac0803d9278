package memory

import "github.com/playermind/playermind/core"

// ContextAssembler builds the bounded context handed to the
// response-generation step: the last window events (most recent last)
// plus the player's facts. Pure read; it never mutates the components it
// is given.
type ContextAssembler struct {
	window int
}

// NewContextAssembler creates an assembler bounded to window recent events.
func NewContextAssembler(window int) ContextAssembler {
	if window <= 0 {
		window = 1
	}
	return ContextAssembler{window: window}
}

// Build assembles the context for player from its event log and fact store.
func (a ContextAssembler) Build(player string, log *EventLog, facts *FactStore) core.Context {
	ctx := core.Context{Player: player}
	if log != nil {
		ctx.RecentEvents = log.Recent(a.window)
	}
	if facts != nil {
		ctx.Facts = facts.Facts()
	}
	return ctx
}
