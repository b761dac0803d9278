package cli

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/viper"

	"github.com/playermind/playermind"
	"github.com/playermind/playermind/core"
	"github.com/playermind/playermind/logging"
	"github.com/playermind/playermind/persist"
	anthropicsum "github.com/playermind/playermind/summarizer/anthropic"
	openaisum "github.com/playermind/playermind/summarizer/openai"
)

func memoryConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.ShortTermLimit = viper.GetInt("memory.short_term_limit")
	cfg.ConsolidationInterval = viper.GetInt("memory.consolidation_interval")
	cfg.ContextWindow = viper.GetInt("memory.context_window")
	cfg.SummarizerWindow = viper.GetInt("memory.summarizer_window")
	cfg.SummarizerTimeout = viper.GetDuration("memory.summarizer_timeout")
	return cfg
}

func buildSummarizer() (core.Summarizer, error) {
	provider := viper.GetString("provider")
	model := viper.GetString("model")
	switch provider {
	case "openai":
		return openaisum.New(func(o *openaisum.Options) {
			if model != "" {
				o.Model = model
			}
		}), nil
	case "anthropic":
		return anthropicsum.New(func(o *anthropicsum.Options) {
			if model != "" {
				o.Model = anthropic.Model(model)
			}
		}), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown summarizer provider %q (want openai, anthropic or none)", provider)
	}
}

func buildMind(logger logging.Logger) (*playermind.PlayerMind, error) {
	sum, err := buildSummarizer()
	if err != nil {
		return nil, err
	}
	return playermind.New(func(o *playermind.Options) {
		o.Config = memoryConfig()
		o.Store = persist.NewFileStore(viper.GetString("snapshot"))
		o.Summarizer = sum
		o.Logger = logger
	})
}

func newLogger() *logging.PlayerMindLogger {
	cfg := logging.DefaultLoggerConfig()
	switch viper.GetString("log_level") {
	case "debug":
		cfg.Level = logging.LogLevelDebug
	case "warn":
		cfg.Level = logging.LogLevelWarn
	case "error":
		cfg.Level = logging.LogLevelError
	default:
		cfg.Level = logging.LogLevelInfo
	}
	return logging.NewLogger(cfg)
}
