package core

import "time"

// Stats is the status() view over the memory system: per-player event
// counts, fact counts per category, and consolidation bookkeeping.
type Stats struct {
	EventsPerPlayer   map[string]int       `json:"events_per_player"`
	FactsPerCategory  map[FactCategory]int `json:"facts_per_category"`
	TotalFacts        int                  `json:"total_facts"`
	TotalEvents       int                  `json:"total_events"`
	ConsolidationsRun int                  `json:"consolidations_run"`
	LastConsolidation *time.Time           `json:"last_consolidation,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}
