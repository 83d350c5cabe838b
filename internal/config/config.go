/*
Package config holds the styling and layout configuration for timeline
rendering.

The configuration maps directly to a YAML file. Every section is optional:
fields left out of the file keep their defaults, so a file that only
overrides the category colors is a valid configuration.

Key configuration patterns:
  - Party blocs are styled through categories, a map from category label
    (as written in the scenario data) to fill color.
  - The bounding window limits alignment and misalignment shading; the
    axis range only limits what is drawn.
  - Duration labels are shown on shaded segments longer than
    duration_label.min_years.
*/
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"politimeline/internal/period"
)

// FontConfig controls the text used throughout the figure.
type FontConfig struct {
	Family string `yaml:"family"` // Font family for all text elements (e.g., "DejaVu Sans, Arial, sans-serif")
	Size   int    `yaml:"size"`   // Base font size in pixels for bar labels and ticks
}

// ColorConfig holds every non-category color of the figure.
type ColorConfig struct {
	Background   string  `yaml:"background"`    // Figure and panel background (hex color code)
	Text         string  `yaml:"text"`          // Titles, labels and ticks
	Muted        string  `yaml:"muted"`         // Footer text
	BarEdge      string  `yaml:"bar_edge"`      // Outline of tenure bars
	Aligned      string  `yaml:"aligned"`       // Shading of aligned periods
	Misaligned   string  `yaml:"misaligned"`    // Shading of misaligned periods
	ShadeOpacity float64 `yaml:"shade_opacity"` // Opacity of both shadings, 0..1
}

// LayoutConfig sets the geometry of the figure. The figure height is not
// configured: it follows from the number of panels and their titles.
type LayoutConfig struct {
	Width        int `yaml:"width"`         // Total SVG width in pixels
	MarginTop    int `yaml:"margin_top"`    // Space above the first panel
	MarginBottom int `yaml:"margin_bottom"` // Space below the last panel, holds the legend and footer
	MarginLeft   int `yaml:"margin_left"`   // Space left of the plot area, holds office labels
	MarginRight  int `yaml:"margin_right"`  // Space right of the plot area
	PanelGap     int `yaml:"panel_gap"`     // Vertical gap between panels
	RowSpacing   int `yaml:"row_spacing"`   // Height of one office row
	BarHeight    int `yaml:"bar_height"`    // Height of a tenure bar inside its row
	AxisHeight   int `yaml:"axis_height"`   // Space below the rows for year ticks
}

// AxisConfig sets the drawn time range and the year ticks.
type AxisConfig struct {
	StartYear int `yaml:"start_year"` // First year on the axis (January 1st)
	EndYear   int `yaml:"end_year"`   // Axis ends on January 1st of this year
	TickStep  int `yaml:"tick_step"`  // Years between tick labels
}

// WindowConfig is the bounding window for alignment complement.
type WindowConfig struct {
	Start period.YearMonth `yaml:"start"`
	End   period.YearMonth `yaml:"end"`
}

// Span returns the window in YYYY.MM form.
func (w WindowConfig) Span() period.Span {
	return period.Span{Start: w.Start, End: w.End}
}

// DurationLabelConfig controls the "5.0 lat" style labels on shaded periods.
type DurationLabelConfig struct {
	Show     bool    `yaml:"show"`      // Whether to draw duration labels at all
	MinYears float64 `yaml:"min_years"` // Only segments strictly longer than this are labeled
	Suffix   string  `yaml:"suffix"`    // Appended after the one-decimal year count
}

// LegendConfig holds the legend and footer texts.
type LegendConfig struct {
	Aligned    string `yaml:"aligned"`    // Label of the aligned patch
	Misaligned string `yaml:"misaligned"` // Label of the misaligned patch
	Footer     string `yaml:"footer"`     // Small text in the bottom right corner, empty to omit
}

// Config represents the complete configuration for political timeline rendering.
type Config struct {
	Font          FontConfig          `yaml:"font"`
	Colors        ColorConfig         `yaml:"colors"`
	Categories    map[string]string   `yaml:"categories"` // Category label -> bar fill color
	Layout        LayoutConfig        `yaml:"layout"`
	Axis          AxisConfig          `yaml:"axis"`
	Window        WindowConfig        `yaml:"window"`
	DurationLabel DurationLabelConfig `yaml:"duration_label"`
	Legend        LegendConfig        `yaml:"legend"`
}

// DefaultCategories is the color scheme of the bundled Polish scenarios.
func DefaultCategories() map[string]string {
	return map[string]string{
		"Lewica":        "#fffacd", // pastel yellow
		"Centroprawica": "#aed9e0", // pastel blue
		"Prawica":       "#f4cccc", // light red
		"Brak":          "#bbbbbb", // gray
	}
}

// DefaultConfig returns the default configuration: a 1600px wide figure
// with pastel party colors, shading at 30% opacity and a 2000.01-2030.08
// bounding window.
func DefaultConfig() Config {
	window := period.DefaultWindow()
	return Config{
		Font: FontConfig{
			Family: "DejaVu Sans, Arial, sans-serif",
			Size:   12,
		},
		Colors: ColorConfig{
			Background:   "#fafafa",
			Text:         "#000000",
			Muted:        "#808080",
			BarEdge:      "#666666",
			Aligned:      "#a8e6cf",
			Misaligned:   "#ff0000",
			ShadeOpacity: 0.3,
		},
		Categories: DefaultCategories(),
		Layout: LayoutConfig{
			Width:        1600,
			MarginTop:    30,
			MarginBottom: 80,
			MarginLeft:   110,
			MarginRight:  40,
			PanelGap:     40,
			RowSpacing:   60,
			BarHeight:    30,
			AxisHeight:   30,
		},
		Axis: AxisConfig{
			StartYear: 2000,
			EndYear:   2032,
			TickStep:  2,
		},
		Window: WindowConfig{
			Start: window.Start,
			End:   window.End,
		},
		DurationLabel: DurationLabelConfig{
			Show:     true,
			MinYears: 1,
			Suffix:   " lat",
		},
		Legend: LegendConfig{
			Aligned:    "Okres zgodności",
			Misaligned: "Okres rozbieżności",
			Footer:     "@ks",
		},
	}
}

// Load reads a YAML configuration on top of the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "error reading config file")
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config file %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML configuration on top of the defaults, then normalizes
// and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	// Decoding into a map merges keys, so start from an empty scheme when the
	// file brings its own categories.
	var probe struct {
		Categories map[string]string `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return Config{}, errors.Wrap(err, "error parsing config")
	}
	if len(probe.Categories) > 0 {
		cfg.Categories = nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "error parsing config")
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize replaces zero or nonsensical values with defaults so that a
// config zeroed by an explicit `key: 0` still renders.
func (c *Config) Normalize() {
	def := DefaultConfig()

	if c.Font.Family == "" {
		c.Font.Family = def.Font.Family
	}
	if c.Font.Size <= 0 {
		c.Font.Size = def.Font.Size
	}
	if c.Colors.ShadeOpacity < 0 || c.Colors.ShadeOpacity > 1 {
		c.Colors.ShadeOpacity = def.Colors.ShadeOpacity
	}
	if len(c.Categories) == 0 {
		c.Categories = def.Categories
	}
	if c.Layout.Width <= c.Layout.MarginLeft+c.Layout.MarginRight {
		c.Layout.Width = def.Layout.Width
		c.Layout.MarginLeft = def.Layout.MarginLeft
		c.Layout.MarginRight = def.Layout.MarginRight
	}
	if c.Layout.RowSpacing <= 0 {
		c.Layout.RowSpacing = def.Layout.RowSpacing
	}
	if c.Layout.BarHeight <= 0 || c.Layout.BarHeight > c.Layout.RowSpacing {
		c.Layout.BarHeight = c.Layout.RowSpacing / 2
	}
	if c.Axis.TickStep <= 0 {
		c.Axis.TickStep = def.Axis.TickStep
	}
	if c.Axis.StartYear <= 0 {
		c.Axis.StartYear = def.Axis.StartYear
	}
	if c.Axis.EndYear <= c.Axis.StartYear {
		c.Axis.EndYear = c.Axis.StartYear + (def.Axis.EndYear - def.Axis.StartYear)
	}
	if c.Window.Start.IsZero() {
		c.Window.Start = def.Window.Start
	}
	if c.Window.End.IsZero() {
		c.Window.End = def.Window.End
	}
}

// Validate checks what Normalize cannot repair.
func (c Config) Validate() error {
	if _, err := c.Window.Span().Interval(); err != nil {
		return errors.Wrap(err, "window")
	}
	for name, color := range c.Categories {
		if color == "" {
			return errors.Errorf("category %q has no color", name)
		}
	}
	return nil
}

// CategoryColor returns the fill color for a category label.
func (c Config) CategoryColor(category string) (string, bool) {
	color, ok := c.Categories[category]
	return color, ok
}
