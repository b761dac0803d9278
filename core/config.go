package core

import (
	"fmt"
	"time"
)

// Config carries the memory tunables. It is passed explicitly into
// constructors; there is no ambient package-level configuration.
type Config struct {
	// ShortTermLimit bounds the per-player recent-event log. Oldest events
	// are evicted first once the limit is reached.
	ShortTermLimit int
	// ConsolidationInterval is the number of appended events per player
	// after which consolidation is triggered.
	ConsolidationInterval int
	// ContextWindow is the number of recent events included in an assembled
	// context.
	ContextWindow int
	// SummarizerWindow is the number of recent events handed to the
	// summarizer. Zero means the full short-term buffer.
	SummarizerWindow int
	// SummarizerTimeout bounds a single summarizer call. On timeout the
	// consolidation cycle is skipped and retried on the next trigger.
	SummarizerTimeout time.Duration
}

// DefaultConfig returns the stock tunables: limit 20, interval 15,
// context window 5, full-buffer summarizer window, 30s timeout.
func DefaultConfig() Config {
	return Config{
		ShortTermLimit:        20,
		ConsolidationInterval: 15,
		ContextWindow:         5,
		SummarizerWindow:      0,
		SummarizerTimeout:     30 * time.Second,
	}
}

// Validate reports the first invalid field, if any.
func (c Config) Validate() error {
	if c.ShortTermLimit <= 0 {
		return fmt.Errorf("short term limit must be positive, got %d", c.ShortTermLimit)
	}
	if c.ConsolidationInterval <= 0 {
		return fmt.Errorf("consolidation interval must be positive, got %d", c.ConsolidationInterval)
	}
	if c.ContextWindow <= 0 {
		return fmt.Errorf("context window must be positive, got %d", c.ContextWindow)
	}
	if c.SummarizerWindow < 0 {
		return fmt.Errorf("summarizer window must not be negative, got %d", c.SummarizerWindow)
	}
	if c.SummarizerTimeout <= 0 {
		return fmt.Errorf("summarizer timeout must be positive, got %s", c.SummarizerTimeout)
	}
	return nil
}
