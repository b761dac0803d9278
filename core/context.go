package core

import (
	"fmt"
	"strings"
)

// Context is the bounded view of a player's memory handed to the
// response-generation step: the most recent events (most recent last,
// length bounded by the configured context window) plus the player's
// long-term facts. It is a value snapshot; mutating it has no effect on
// the underlying memory.
type Context struct {
	Player       string  `json:"player"`
	RecentEvents []Event `json:"recent_events"`
	Facts        []Fact  `json:"facts"`
}

// Prompt renders the context as the text block fed into a response prompt:
// recent events first, then the known facts. Empty sections are omitted.
func (c Context) Prompt() string {
	var b strings.Builder
	if len(c.RecentEvents) > 0 {
		b.WriteString("Recent events:\n")
		for _, ev := range c.RecentEvents {
			fmt.Fprintf(&b, "- %s\n", ev.Describe())
		}
	}
	if len(c.Facts) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "What I know about %s:\n", c.Player)
		for _, f := range c.Facts {
			fmt.Fprintf(&b, "- [%s] %s\n", f.Category, f.Text)
		}
	}
	return b.String()
}
