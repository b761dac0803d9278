package summarizer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/playermind/playermind/core"
)

// insightKeys maps the JSON payload keys to fact categories.
var insightKeys = map[string]core.FactCategory{
	"preferences":  core.FactPreference,
	"projects":     core.FactBuildingProject,
	"personality":  core.FactPersonalityNote,
	"achievements": core.FactAchievement,
}

// Parse decodes the strict JSON insight payload returned by a model into
// candidate facts. Models occasionally wrap the payload in markdown code
// fences; those are stripped first. Unknown keys, non-string entries and
// empty strings are dropped per candidate; only an unparsable document as
// a whole is an error.
func Parse(raw string) ([]core.Fact, error) {
	cleaned := stripCodeFence(raw)
	if strings.TrimSpace(cleaned) == "" {
		return nil, fmt.Errorf("empty summarizer response")
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("decode insight payload: %w", err)
	}

	var facts []core.Fact
	// Stable category order keeps merge results deterministic.
	for _, key := range []string{"preferences", "projects", "personality", "achievements"} {
		rawList, ok := payload[key]
		if !ok {
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(rawList, &items); err != nil {
			continue // malformed list, drop the whole key
		}
		category := insightKeys[key]
		for _, item := range items {
			var text string
			if err := json.Unmarshal(item, &text); err != nil {
				continue // non-string entry
			}
			if core.NormalizeText(text) == "" {
				continue
			}
			facts = append(facts, core.Fact{Category: category, Text: strings.TrimSpace(text)})
		}
	}
	return facts, nil
}

// stripCodeFence removes a surrounding ```...``` (optionally ```json) fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 && strings.EqualFold(strings.TrimSpace(s[:idx]), "json") {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
