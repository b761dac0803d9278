package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playermind/playermind/core"
	"github.com/playermind/playermind/logging"
)

var (
	// ErrNoSummarizer is returned when consolidation is requested but no
	// summarizer was configured.
	ErrNoSummarizer = errors.New("no summarizer configured")
)

// Consolidator invokes the summarizer over an event window and validates
// the returned candidates. It is stateless; the Manager owns the trigger
// counter and the merge into the fact store.
type Consolidator struct {
	summarizer core.Summarizer
	timeout    time.Duration
	logger     logging.Logger
}

// NewConsolidator wires a summarizer with the configured call timeout.
// summarizer may be nil, in which case Run always fails with ErrNoSummarizer.
func NewConsolidator(summarizer core.Summarizer, cfg core.Config, logger logging.Logger) *Consolidator {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Consolidator{summarizer: summarizer, timeout: cfg.SummarizerTimeout, logger: logger}
}

// Enabled reports whether a summarizer is configured.
func (c *Consolidator) Enabled() bool { return c.summarizer != nil }

// Run calls the summarizer with (window, existing) under the configured
// timeout and returns the validated candidates, stamped with the player
// and a creation time. A timeout or transport error is returned as-is so
// the caller can leave the consolidation counter untouched; malformed
// candidates (unknown category, empty text) are dropped individually and
// never fail the batch.
func (c *Consolidator) Run(ctx context.Context, player string, window []core.Event, existing []core.Fact) ([]core.Fact, error) {
	if c.summarizer == nil {
		return nil, ErrNoSummarizer
	}
	if len(window) == 0 {
		return nil, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	candidates, err := c.summarizer.Summarize(callCtx, window, existing)
	if err != nil {
		c.logger.Warn("summarizer call failed", "player", player, "duration", time.Since(start), "error", err)
		return nil, fmt.Errorf("summarize for %q: %w", player, err)
	}
	c.logger.Debug("summarizer call completed", "player", player, "candidates", len(candidates), "duration", time.Since(start))

	now := time.Now().UTC()
	valid := make([]core.Fact, 0, len(candidates))
	for _, cand := range candidates {
		if !cand.Category.Valid() || core.NormalizeText(cand.Text) == "" {
			c.logger.Debug("dropping malformed candidate", "player", player, "category", string(cand.Category))
			continue
		}
		cand.Player = player
		if cand.CreatedAt.IsZero() {
			cand.CreatedAt = now
		}
		valid = append(valid, cand)
	}
	return valid, nil
}
