package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSummaryCommand creates the summary command, a text breakdown of
// aligned and misaligned years per scenario.
func NewSummaryCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print aligned and misaligned years per scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, doc, err := opts.loadInputs()
			if err != nil {
				return err
			}
			window, err := cfg.Window.Span().Interval()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-8s %8s %11s %9s\n", "scenario", "aligned", "misaligned", "segments")
			for _, s := range doc.Scenarios {
				sum, err := s.Summarize(window)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-8s %8.2f %11.2f %9d\n", sum.ID, sum.AlignedYears, sum.MisalignedYears, len(sum.Misaligned))
			}
			return nil
		},
	}

	cmd.Flags().String("data", "", "YAML scenario data file (optional, bundled dataset if empty)")
	return cmd
}
