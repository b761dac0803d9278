package memory

import "github.com/playermind/playermind/core"

// EventLog is a bounded FIFO sequence of recent events for a single
// player, backed by a fixed-size ring buffer. Appending beyond the limit
// evicts the oldest event in O(1). Appending is never rejected.
//
// Not safe for concurrent use; the Manager serializes access.
type EventLog struct {
	limit int
	buf   []core.Event
	head  int // index of the oldest event
	size  int
}

// NewEventLog creates an event log bounded to limit events.
func NewEventLog(limit int) *EventLog {
	if limit <= 0 {
		limit = 1
	}
	return &EventLog{limit: limit, buf: make([]core.Event, limit)}
}

// Append adds an event, evicting the oldest one if the log is full.
func (l *EventLog) Append(ev core.Event) {
	if l.size < l.limit {
		l.buf[(l.head+l.size)%l.limit] = ev
		l.size++
		return
	}
	l.buf[l.head] = ev
	l.head = (l.head + 1) % l.limit
}

// Recent returns up to n events, oldest first among the survivors (most
// recent last). The returned slice is a copy.
func (l *EventLog) Recent(n int) []core.Event {
	if n <= 0 || l.size == 0 {
		return nil
	}
	if n > l.size {
		n = l.size
	}
	out := make([]core.Event, n)
	start := l.size - n
	for i := 0; i < n; i++ {
		out[i] = l.buf[(l.head+start+i)%l.limit]
	}
	return out
}

// All returns every retained event, oldest first.
func (l *EventLog) All() []core.Event { return l.Recent(l.size) }

// Len returns the number of retained events.
func (l *EventLog) Len() int { return l.size }

// Clear discards all retained events.
func (l *EventLog) Clear() {
	l.head = 0
	l.size = 0
	for i := range l.buf {
		l.buf[i] = core.Event{}
	}
}
