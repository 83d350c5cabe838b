package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and scenario data without rendering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, doc, err := opts.loadInputs()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d scenarios, %d offices, %d markers\n",
				len(doc.Scenarios), len(doc.Offices), len(doc.Markers))
			return nil
		},
	}

	cmd.Flags().String("data", "", "YAML scenario data file (optional, bundled dataset if empty)")
	return cmd
}
