package cli

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"politimeline/internal/config"
	"politimeline/internal/log"
	"politimeline/internal/scenario"
)

// DefaultOutput is the SVG filename used when neither --output nor --data
// is given.
const DefaultOutput = "political_timelines.svg"

// loadInputs reads the style configuration and the dataset and validates
// one against the other. An empty data path selects the bundled dataset.
func (o *RootOptions) loadInputs() (config.Config, *scenario.Document, error) {
	configPath := o.v.GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, errors.Wrap(err, "loading configuration")
	}
	log.Debug("configuration loaded",
		"path", configPath,
		"font_size", cfg.Font.Size,
		"categories", len(cfg.Categories),
		"window", cfg.Window.Span())

	dataPath := o.v.GetString("data")
	var doc *scenario.Document
	if dataPath == "" {
		doc, err = scenario.Default()
	} else {
		doc, err = scenario.Load(dataPath)
	}
	if err != nil {
		return config.Config{}, nil, errors.Wrap(err, "loading data")
	}
	if err := doc.Validate(cfg.Categories); err != nil {
		return config.Config{}, nil, err
	}
	log.Debug("data loaded", "path", dataPath, "scenarios", len(doc.Scenarios), "offices", len(doc.Offices))

	return cfg, doc, nil
}

// outputFilename determines the output filename for the SVG file.
// If outputFile is provided and not empty, it returns that filename.
// Otherwise, it derives the filename from the data file by replacing
// the extension with .svg (e.g., "scenarios.yaml" becomes "scenarios.svg"),
// falling back to DefaultOutput for the bundled dataset.
func outputFilename(dataFile, outputFile string) string {
	if outputFile != "" {
		return outputFile
	}
	if dataFile == "" {
		return DefaultOutput
	}
	base := filepath.Base(dataFile)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".svg"
}

// pngFilename places the PNG next to the SVG.
func pngFilename(svgFile string) string {
	return strings.TrimSuffix(svgFile, filepath.Ext(svgFile)) + ".png"
}
