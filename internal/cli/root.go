// Package cli wires the playermind command line: configuration via viper
// (config file + PLAYERMIND_ environment variables) and the serve/export
// subcommands.
package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const rootLongDesc = `playermind runs the player memory service: it ingests gameplay events,
consolidates them into long-term facts with an LLM summarizer, and serves
the assembled context over HTTP.

Configuration is read from --config (or ./playermind.yaml), overridable
with PLAYERMIND_* environment variables.`

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "playermind",
		Short:         "Player memory service for AI game companions",
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cfgFile)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./playermind.yaml)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewExportCmd())

	return cmd
}

func initConfig(cfgFile string) error {
	viper.SetDefault("listen", ":8000")
	viper.SetDefault("snapshot", "data/playermind.json")
	viper.SetDefault("provider", "none")
	viper.SetDefault("model", "")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("memory.short_term_limit", 20)
	viper.SetDefault("memory.consolidation_interval", 15)
	viper.SetDefault("memory.context_window", 5)
	viper.SetDefault("memory.summarizer_window", 0)
	viper.SetDefault("memory.summarizer_timeout", "30s")

	viper.SetEnvPrefix("PLAYERMIND")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("playermind")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/playermind")
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults + env carry the setup.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}
