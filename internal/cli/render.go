package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"politimeline/internal/log"
	"politimeline/internal/rasterize"
	"politimeline/internal/render"
)

// NewRenderCommand creates the render command: data in, SVG (and
// optionally PNG) out.
func NewRenderCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render every scenario into one SVG figure",
		Example: "  politimeline render\n" +
			"  politimeline render --data scenarios.yaml --config style.yaml --output timeline.svg --png",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runRender(cmd)
		},
	}

	cmd.Flags().String("data", "", "YAML scenario data file (optional, bundled dataset if empty)")
	cmd.Flags().String("output", "", "output SVG filename (optional)")
	cmd.Flags().Bool("png", false, "also write a PNG next to the SVG using headless Chromium")
	cmd.Flags().Int("dpi", rasterize.DefaultDPI, "PNG resolution")
	cmd.Flags().Duration("png-timeout", rasterize.DefaultTimeout, "time limit for PNG export")

	return cmd
}

func (o *RootOptions) runRender(cmd *cobra.Command) error {
	cfg, doc, err := o.loadInputs()
	if err != nil {
		return err
	}

	r, err := render.New(cfg)
	if err != nil {
		return err
	}
	fig, err := r.RenderFigure(doc)
	if err != nil {
		return errors.Wrap(err, "rendering")
	}

	outputPath := outputFilename(o.v.GetString("data"), o.v.GetString("output"))
	if err := os.WriteFile(outputPath, []byte(fig.SVG), 0o644); err != nil {
		return errors.Wrap(err, "error writing SVG file")
	}
	log.Info("timeline SVG written", "path", outputPath, "scenarios", len(doc.Scenarios),
		"width", fig.Width, "height", fig.Height)
	fmt.Fprintf(cmd.OutOrStdout(), "Timeline SVG generated successfully: %s\n", outputPath)

	if !o.v.GetBool("png") {
		return nil
	}

	pngPath := pngFilename(outputPath)
	start := time.Now()
	err = rasterize.SVGToPNG(cmd.Context(), rasterize.Options{
		SVGPath:    outputPath,
		OutputPath: pngPath,
		Width:      fig.Width,
		Height:     fig.Height,
		DPI:        o.v.GetInt("dpi"),
		Timeout:    o.v.GetDuration("png-timeout"),
	})
	if err != nil {
		return err
	}
	log.Info("timeline PNG written", "path", pngPath, "dpi", o.v.GetInt("dpi"), "took", time.Since(start))
	fmt.Fprintf(cmd.OutOrStdout(), "Timeline PNG generated successfully: %s\n", pngPath)
	return nil
}
