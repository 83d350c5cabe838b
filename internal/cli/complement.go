package cli

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"politimeline/internal/period"
)

// NewComplementCommand creates the complement command, which prints the
// parts of a window not covered by the given intervals.
func NewComplementCommand(opts *RootOptions) *cobra.Command {
	def := period.DefaultWindow()
	cmd := &cobra.Command{
		Use:   "complement START-END [START-END...]",
		Short: "Print the gaps a set of YYYY.MM intervals leaves in a window",
		Example: "  politimeline complement 2001.10-2005.10 2003.01-2007.11 --window-start 2000.01 --window-end 2010.01\n" +
			"  2000-01-01 -> 2001-10-01\n" +
			"  2007-11-01 -> 2010-01-01",
		RunE: func(cmd *cobra.Command, args []string) error {
			spans := make([]period.Span, 0, len(args))
			for _, arg := range args {
				s, err := parseSpanArg(arg)
				if err != nil {
					return err
				}
				spans = append(spans, s)
			}

			window, err := opts.windowFromFlags()
			if err != nil {
				return err
			}

			gaps, err := period.ComplementSpans(spans, window)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, g := range gaps {
				fmt.Fprintln(out, g)
			}
			return nil
		},
	}

	cmd.Flags().String("window-start", def.Start.String(), "start of the bounding window (YYYY.MM)")
	cmd.Flags().String("window-end", def.End.String(), "end of the bounding window (YYYY.MM)")

	return cmd
}

// parseSpanArg parses "2001.10-2005.10".
func parseSpanArg(arg string) (period.Span, error) {
	start, end, found := strings.Cut(arg, "-")
	if !found {
		return period.Span{}, errors.Errorf("interval %q: expected START-END", arg)
	}
	s, err := period.ParseYearMonth(start)
	if err != nil {
		return period.Span{}, errors.Wrapf(err, "interval %q", arg)
	}
	e, err := period.ParseYearMonth(end)
	if err != nil {
		return period.Span{}, errors.Wrapf(err, "interval %q", arg)
	}
	return period.Span{Start: s, End: e}, nil
}

func (o *RootOptions) windowFromFlags() (period.Span, error) {
	start, err := period.ParseYearMonth(o.v.GetString("window-start"))
	if err != nil {
		return period.Span{}, errors.Wrap(err, "--window-start")
	}
	end, err := period.ParseYearMonth(o.v.GetString("window-end"))
	if err != nil {
		return period.Span{}, errors.Wrap(err, "--window-end")
	}
	return period.Span{Start: start, End: end}, nil
}
