package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventKind classifies a gameplay event. The set is fixed; summarizer
// candidates and ingestion payloads referencing unknown kinds are rejected
// at the edges, never stored.
type EventKind string

const (
	// EventChat is a chat message sent by the player.
	EventChat EventKind = "chat"
	// EventAction is a game action (block break, craft, combat, ...).
	EventAction EventKind = "action"
	// EventAIResponse is a reply previously produced by the companion.
	EventAIResponse EventKind = "ai_response"
	// EventSystem is a non-player occurrence (join, death, weather, ...).
	EventSystem EventKind = "system"
)

// Valid reports whether k is one of the fixed event kinds.
func (k EventKind) Valid() bool {
	switch k {
	case EventChat, EventAction, EventAIResponse, EventSystem:
		return true
	}
	return false
}

// Event is a single timestamped occurrence attributed to a player. After
// it has been appended to the event log it is treated as immutable.
// Ordering is insertion order; uniqueness is not required (the ID exists
// for correlation, not identity).
type Event struct {
	ID        string            `json:"id"`
	Player    string            `json:"player"`
	Kind      EventKind         `json:"kind"`
	Payload   map[string]string `json:"payload,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// NewEvent creates an event with a fresh ID and a UTC timestamp.
func NewEvent(player string, kind EventKind, payload map[string]string) Event {
	return Event{
		ID:        NewID(),
		Player:    player,
		Kind:      kind,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// NewChatEvent is a convenience wrapper for a player chat message.
func NewChatEvent(player, text string) Event {
	return NewEvent(player, EventChat, map[string]string{"text": text})
}

// Describe renders the event as a compact single line ("kind - k1=v1, k2=v2")
// suitable for summarizer prompts and logs. Payload keys are emitted in
// sorted order so the rendering is deterministic.
func (e Event) Describe() string {
	if len(e.Payload) == 0 {
		return string(e.Kind)
	}
	keys := make([]string, 0, len(e.Payload))
	for k := range e.Payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, e.Payload[k]))
	}
	return fmt.Sprintf("%s - %s", e.Kind, strings.Join(pairs, ", "))
}

// NewID generates a new unique identifier for events.
func NewID() string { return uuid.NewString() }
