package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewExportCmd builds the export command: load the snapshot and write an
// independent copy to the given destination.
func NewExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <destination>",
		Short: "Export the memory snapshot to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			logger := newLogger().WithComponent("export")
			mind, err := buildMind(logger)
			if err != nil {
				return err
			}
			if err := mind.Export(args[0]); err != nil {
				return err
			}
			fmt.Printf("memory exported to %s\n", args[0])
			return nil
		},
	}
}
