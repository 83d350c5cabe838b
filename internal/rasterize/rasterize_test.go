package rasterize

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"no svg", Options{OutputPath: "out.png", Width: 10, Height: 10}, "SVGPath"},
		{"no output", Options{SVGPath: "in.svg", Width: 10, Height: 10}, "OutputPath"},
		{"no size", Options{SVGPath: "in.svg", OutputPath: "out.png"}, "invalid size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOptions_Defaults(t *testing.T) {
	opts := Options{SVGPath: "in.svg", OutputPath: "out.png", Width: 1600, Height: 900}
	require.NoError(t, opts.validate())
	assert.Equal(t, DefaultDPI, opts.DPI)
	assert.Equal(t, DefaultTimeout, opts.Timeout)
	assert.InDelta(t, 3.125, opts.Scale(), 1e-9)

	assert.InDelta(t, 1.0, Options{DPI: 96}.Scale(), 1e-9)
	assert.InDelta(t, 3.125, Options{}.Scale(), 1e-9)
}

func TestFileURL(t *testing.T) {
	u, err := fileURL(filepath.Join(t.TempDir(), "a b.svg"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "file:///"), u)
	assert.True(t, strings.HasSuffix(u, "/a%20b.svg"), u)
}

func TestSVGToPNG_MissingFile(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := SVGToPNG(ctx, Options{
		SVGPath:    filepath.Join(t.TempDir(), "missing.svg"),
		OutputPath: filepath.Join(t.TempDir(), "out.png"),
		Width:      100,
		Height:     100,
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
