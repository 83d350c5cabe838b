package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"politimeline/internal/period"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDefaultConfig_Window(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, period.DefaultWindow(), cfg.Window.Span())
	require.NoError(t, cfg.Validate())
}

func TestParse_PartialOverride(t *testing.T) {
	cfg, err := Parse([]byte(`
font:
  size: 14
colors:
  aligned: "#00ff00"
window:
  end: 2027.11
`))
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, 14, cfg.Font.Size)
	assert.Equal(t, def.Font.Family, cfg.Font.Family)
	assert.Equal(t, "#00ff00", cfg.Colors.Aligned)
	assert.Equal(t, def.Colors.Misaligned, cfg.Colors.Misaligned)
	assert.Equal(t, def.Window.Start, cfg.Window.Start)
	assert.Equal(t, period.MustYearMonth(2027, time.November), cfg.Window.End)
	assert.Equal(t, def.Categories, cfg.Categories)
}

func TestParse_CategoriesReplaceDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
categories:
  Left: "#ff0000"
  Right: "#0000ff"
`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Left": "#ff0000", "Right": "#0000ff"}, cfg.Categories)

	color, ok := cfg.CategoryColor("Left")
	assert.True(t, ok)
	assert.Equal(t, "#ff0000", color)
	_, ok = cfg.CategoryColor("Lewica")
	assert.False(t, ok)
}

func TestParse_NormalizesZeroValues(t *testing.T) {
	cfg, err := Parse([]byte(`
font:
  size: 0
layout:
  row_spacing: 0
  bar_height: 500
axis:
  tick_step: -1
  end_year: 1990
colors:
  shade_opacity: 4
`))
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Font.Size, cfg.Font.Size)
	assert.Equal(t, def.Layout.RowSpacing, cfg.Layout.RowSpacing)
	assert.Equal(t, def.Layout.RowSpacing/2, cfg.Layout.BarHeight)
	assert.Equal(t, def.Axis.TickStep, cfg.Axis.TickStep)
	assert.Equal(t, def.Axis.EndYear, cfg.Axis.EndYear)
	assert.Equal(t, def.Colors.ShadeOpacity, cfg.Colors.ShadeOpacity)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		is   error
	}{
		{"inverted window", "window:\n  start: 2030.08\n  end: 2000.01\n", period.ErrInvertedInterval},
		{"bad month", "window:\n  start: 2000.13\n", period.ErrInvalidDateEncoding},
		{"syntax", "font: [", nil},
		{"empty color", "categories:\n  Left: \"\"\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte("legend:\n  footer: \"\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Legend.Footer)
	assert.Equal(t, DefaultConfig().Legend.Aligned, cfg.Legend.Aligned)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
