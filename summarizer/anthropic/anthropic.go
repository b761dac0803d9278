// Package anthropic provides a core.Summarizer backed by the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/playermind/playermind/core"
	"github.com/playermind/playermind/summarizer"
)

// Options configure the Anthropic summarizer (model id, temperature, max
// tokens, API key).
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Summarizer wraps the Anthropic Messages API behind core.Summarizer.
type Summarizer struct {
	client *anthropic.Client
	opts   Options
}

var _ core.Summarizer = (*Summarizer)(nil)

// New creates a new Anthropic summarizer using the official client.
func New(optFns ...func(o *Options)) *Summarizer {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)
	return &Summarizer{client: &client, opts: opts}
}

// NewFromClient creates a new Anthropic summarizer from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Summarizer {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Summarizer{client: client, opts: opts}
}

func defaultOptions() Options {
	return Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.2,
		MaxTokens:   512,
	}
}

// Summarize implements core.Summarizer via a non-streaming message call.
func (s *Summarizer) Summarize(ctx context.Context, window []core.Event, existing []core.Fact) ([]core.Fact, error) {
	params := anthropic.MessageNewParams{
		Model:       s.opts.Model,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: anthropic.Float(s.opts.Temperature),
		System:      []anthropic.TextBlockParam{{Text: summarizer.SystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(summarizer.UserPrompt(window, existing))),
		},
	}

	resp, err := s.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.AsText().Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("anthropic response contained no text")
	}
	return summarizer.Parse(text.String())
}
