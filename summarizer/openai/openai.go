// Package openai provides a core.Summarizer backed by the OpenAI Chat
// Completions API. It renders the event window into the strict JSON
// insight prompt and parses the completion back into candidate facts.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/playermind/playermind/core"
	"github.com/playermind/playermind/summarizer"
)

// Options configure the OpenAI summarizer. Fields mirror a minimal subset
// of Chat Completion parameters; extend via functional options without
// breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Summarizer wraps the OpenAI Chat Completions API behind core.Summarizer.
type Summarizer struct {
	client *openai.Client
	opts   Options
}

var _ core.Summarizer = (*Summarizer)(nil)

// New creates a new OpenAI summarizer using the official client with its
// default configuration (API key from environment).
func New(optFns ...func(o *Options)) *Summarizer {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a new OpenAI summarizer from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Summarizer {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.2,
		MaxCompletionTokens: 512,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Summarizer{client: client, opts: opts}
}

// Summarize implements core.Summarizer via a non-streaming chat completion.
func (s *Summarizer) Summarize(ctx context.Context, window []core.Event, existing []core.Fact) ([]core.Fact, error) {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(summarizer.SystemPrompt),
			openai.UserMessage(summarizer.UserPrompt(window, existing)),
		},
		Model:               s.opts.Model,
		Temperature:         openai.Float(s.opts.Temperature),
		MaxCompletionTokens: openai.Int(s.opts.MaxCompletionTokens),
	}

	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai response contained no choices")
	}
	return summarizer.Parse(resp.Choices[0].Message.Content)
}
