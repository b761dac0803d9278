package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/playermind/playermind/server"
)

// NewServeCmd builds the serve command: load the snapshot, start the HTTP
// server and flush the snapshot on shutdown.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the player memory HTTP service",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe()
		},
	}

	cmd.Flags().String("listen", "", "listen address (overrides config)")
	cmd.Flags().String("snapshot", "", "snapshot file path (overrides config)")
	cmd.Flags().String("provider", "", "summarizer provider: openai, anthropic or none")
	_ = viper.BindPFlag("listen", cmd.Flags().Lookup("listen"))
	_ = viper.BindPFlag("snapshot", cmd.Flags().Lookup("snapshot"))
	_ = viper.BindPFlag("provider", cmd.Flags().Lookup("provider"))

	return cmd
}

func runServe() error {
	logger := newLogger().WithComponent("serve")

	mind, err := buildMind(logger)
	if err != nil {
		return err
	}

	srv := server.NewServer(server.Config{ListenAddr: viper.GetString("listen")}, mind.Manager(), logger)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		logger.Info("shutting down", "signal", sig.String())
	}

	if err := srv.Shutdown(); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	if err := mind.Flush(); err != nil {
		return fmt.Errorf("final snapshot flush failed: %w", err)
	}
	return nil
}
