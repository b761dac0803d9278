package testutil

import (
	"fmt"
	"time"

	"github.com/playermind/playermind/core"
)

// EventBuilder constructs events for tests.
// Example:
//
//	ev := NewEventBuilder().Player("Steve").Kind(core.EventAction).Detail("block", "oak_log").Build()
type EventBuilder struct {
	player  string
	kind    core.EventKind
	payload map[string]string
	ts      time.Time
}

// NewEventBuilder creates a builder with default player "Steve" and kind action.
func NewEventBuilder() *EventBuilder {
	return &EventBuilder{player: "Steve", kind: core.EventAction}
}

// Player sets the player name (chainable).
func (b *EventBuilder) Player(p string) *EventBuilder { b.player = p; return b }

// Kind sets the event kind (chainable).
func (b *EventBuilder) Kind(k core.EventKind) *EventBuilder { b.kind = k; return b }

// Detail adds a payload entry (chainable).
func (b *EventBuilder) Detail(k, v string) *EventBuilder {
	if b.payload == nil {
		b.payload = map[string]string{}
	}
	b.payload[k] = v
	return b
}

// At overrides the timestamp (chainable). Use where determinism matters.
func (b *EventBuilder) At(t time.Time) *EventBuilder { b.ts = t; return b }

// Build materializes the event.
func (b *EventBuilder) Build() core.Event {
	ev := core.NewEvent(b.player, b.kind, b.payload)
	if !b.ts.IsZero() {
		ev.Timestamp = b.ts
	}
	return ev
}

// Events builds n sequential action events with distinct payloads, useful
// for filling an event log.
func Events(player string, n int) []core.Event {
	out := make([]core.Event, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, NewEventBuilder().Player(player).Detail("seq", fmt.Sprintf("%d", i)).Build())
	}
	return out
}

// NewFact builds a fact with a fixed creation time so comparisons stay
// deterministic.
func NewFact(player string, category core.FactCategory, text string) core.Fact {
	return core.Fact{
		Player:    player,
		Category:  category,
		Text:      text,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}
