package summarizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/playermind/playermind/core"
)

// SystemPrompt instructs the model to return the strict JSON insight
// payload understood by Parse.
const SystemPrompt = `You extract durable gameplay insights about a player from recent game events.
Return ONLY valid JSON with these keys:
{"preferences":[],"projects":[],"personality":[],"achievements":[]}
Each value is an array of short strings. No extra text.`

// UserPrompt renders the event window and the already known facts into the
// user message for a summarization call. Existing facts are included so
// the model avoids restating what is already known.
func UserPrompt(window []core.Event, existing []core.Fact) string {
	var b strings.Builder
	b.WriteString("Analyze these events and return only JSON with significant long-term insights. Prefer concise, de-duplicated phrases.\n\nEvents:\n")
	for _, ev := range window {
		fmt.Fprintf(&b, "%s: %s\n", ev.Timestamp.Format(time.RFC3339), ev.Describe())
	}
	if len(existing) > 0 {
		b.WriteString("\nAlready known (do not repeat):\n")
		for _, f := range existing {
			fmt.Fprintf(&b, "- [%s] %s\n", f.Category, f.Text)
		}
	}
	return b.String()
}
