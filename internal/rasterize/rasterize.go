// Package rasterize converts a rendered SVG file into a PNG by screenshotting
// it in headless Chromium.
package rasterize

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultDPI     = 300
	DefaultTimeout = 30 * time.Second

	// cssDPI is the resolution one CSS pixel corresponds to.
	cssDPI = 96
)

// Options describes one SVG to PNG conversion.
type Options struct {
	// SVGPath is the SVG file to load.
	SVGPath string
	// OutputPath is where the PNG is written.
	OutputPath string
	// Width and Height are the SVG's dimensions in CSS pixels.
	Width  int
	Height int
	// DPI scales the screenshot: 96 is one device pixel per CSS pixel.
	DPI int
	// Timeout bounds the whole browser session.
	Timeout time.Duration
}

func (o *Options) validate() error {
	if o.SVGPath == "" {
		return errors.New("rasterize: SVGPath is required")
	}
	if o.OutputPath == "" {
		return errors.New("rasterize: OutputPath is required")
	}
	if o.Width <= 0 || o.Height <= 0 {
		return errors.Errorf("rasterize: invalid size %dx%d", o.Width, o.Height)
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return nil
}

// Scale returns the device scale factor for the configured DPI.
func (o Options) Scale() float64 {
	dpi := o.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return float64(dpi) / cssDPI
}

// fileURL turns a local path into a file:// URL Chromium can navigate to.
func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(err, "rasterize: resolving SVG path")
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// SVGToPNG loads opts.SVGPath in a headless Chromium sized to the SVG,
// takes a full-page screenshot at opts.DPI and writes it to opts.OutputPath.
func SVGToPNG(parentCtx context.Context, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if _, err := os.Stat(opts.SVGPath); err != nil {
		return errors.Wrap(err, "rasterize")
	}
	target, err := fileURL(opts.SVGPath)
	if err != nil {
		return err
	}

	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height), chromedp.EmulateScale(opts.Scale())),
		chromedp.Navigate(target),
		chromedp.WaitReady("svg", chromedp.ByQuery),
		chromedp.FullScreenshot(&png, 100),
	}
	if err := chromedp.Run(ctx, tasks); err != nil {
		return errors.Wrap(err, "rasterize: chromedp run failed")
	}

	if err := os.WriteFile(opts.OutputPath, png, 0o644); err != nil {
		return errors.Wrap(err, "rasterize: failed to write PNG")
	}
	return nil
}
