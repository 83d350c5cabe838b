/*
Package render draws political timelines as a single SVG document.

Every scenario becomes one panel: a title block, one row per office with a
bar per tenure, and a background shaded by alignment. Aligned periods come
from the data; misaligned periods are their complement inside the
configured bounding window. Panels share the horizontal axis and are
stacked vertically, followed by a legend and a footer.
*/
package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"

	"politimeline/internal/config"
	"politimeline/internal/log"
	"politimeline/internal/period"
	"politimeline/internal/scenario"
)

var (
	// ErrUnknownCategory is returned when a tenure's category has no color.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownOffice is returned when a tenure names an office the document
	// does not define.
	ErrUnknownOffice = errors.New("unknown office")
)

// Renderer turns scenario documents into SVG using one configuration.
type Renderer struct {
	cfg config.Config

	axisStart time.Time
	axisEnd   time.Time
	window    period.Interval
}

// New returns a Renderer for cfg. The configuration is normalized first, so
// a hand-built Config with missing sections still renders.
func New(cfg config.Config) (*Renderer, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "render config")
	}
	window, err := cfg.Window.Span().Interval()
	if err != nil {
		return nil, errors.Wrap(err, "render window")
	}
	return &Renderer{
		cfg:       cfg,
		axisStart: time.Date(cfg.Axis.StartYear, time.January, 1, 0, 0, 0, 0, time.UTC),
		axisEnd:   time.Date(cfg.Axis.EndYear, time.January, 1, 0, 0, 0, 0, time.UTC),
		window:    window,
	}, nil
}

// plotLeft and plotRight bound the horizontal extent of every panel's rows.
func (r *Renderer) plotLeft() float64 {
	return float64(r.cfg.Layout.MarginLeft)
}

func (r *Renderer) plotRight() float64 {
	return float64(r.cfg.Layout.Width - r.cfg.Layout.MarginRight)
}

// x maps a date to a horizontal position, clamped to the plot area.
func (r *Renderer) x(t time.Time) float64 {
	total := r.axisEnd.Sub(r.axisStart).Hours()
	proportion := t.Sub(r.axisStart).Hours() / total
	if proportion < 0 {
		proportion = 0
	}
	if proportion > 1 {
		proportion = 1
	}
	return r.plotLeft() + proportion*(r.plotRight()-r.plotLeft())
}

// Figure is a rendered SVG document and its pixel size.
type Figure struct {
	SVG    string
	Width  int
	Height int
}

// Render draws every scenario of doc into one SVG document.
func (r *Renderer) Render(doc *scenario.Document) (string, error) {
	fig, err := r.RenderFigure(doc)
	if err != nil {
		return "", err
	}
	return fig.SVG, nil
}

// RenderFigure is Render that also reports the figure size.
func (r *Renderer) RenderFigure(doc *scenario.Document) (Figure, error) {
	if len(doc.Scenarios) == 0 {
		return Figure{}, errors.New("render: document has no scenarios")
	}

	panels := make([]*panel, 0, len(doc.Scenarios))
	height := float64(r.cfg.Layout.MarginTop)
	for i, s := range doc.Scenarios {
		p, err := r.layoutPanel(doc, s, height)
		if err != nil {
			return Figure{}, errors.Wrapf(err, "scenario %s", s.ID)
		}
		panels = append(panels, p)
		height += p.height
		if i < len(doc.Scenarios)-1 {
			height += float64(r.cfg.Layout.PanelGap)
		}
	}
	height = math.Ceil(height + float64(r.cfg.Layout.MarginBottom))

	var svg svgWriter
	r.writeHeader(&svg, height)
	for _, p := range panels {
		r.drawPanel(&svg, doc, p)
		log.Debug("panel drawn",
			"scenario", p.scenario.ID,
			"tenures", len(p.scenario.Tenures),
			"aligned", len(p.aligned),
			"misaligned", len(p.misaligned))
	}
	r.drawLegend(&svg, doc.Markers, height)
	svg.printf("</svg>")

	return Figure{
		SVG:    svg.String(),
		Width:  r.cfg.Layout.Width,
		Height: int(height),
	}, nil
}

func (r *Renderer) writeHeader(svg *svgWriter, height float64) {
	cfg := r.cfg
	svg.printf(`<?xml version="1.0" encoding="UTF-8"?>`)
	svg.printf(`<svg width="%d" height="%.0f" viewBox="0 0 %d %.0f" xmlns="http://www.w3.org/2000/svg">`,
		cfg.Layout.Width, height, cfg.Layout.Width, height)
	svg.printf(`<rect width="100%%" height="100%%" fill="%s"/>`, escapeXML(cfg.Colors.Background))
	svg.printf(`<defs>
<style>
text { font-family: %s; fill: %s; }
.title { font-size: %dpx; font-weight: bold; }
.subtitle { font-size: %dpx; font-style: italic; }
.name { font-size: %dpx; }
.office { font-size: %dpx; }
.tick { font-size: %dpx; }
.duration { font-size: %dpx; font-weight: bold; }
.legend { font-size: %dpx; }
.footer { font-size: %dpx; font-style: italic; fill: %s; }
</style>
</defs>`,
		escapeXML(cfg.Font.Family), escapeXML(cfg.Colors.Text),
		cfg.Font.Size,
		max(cfg.Font.Size-2, 1),
		cfg.Font.Size,
		cfg.Font.Size,
		cfg.Font.Size,
		max(cfg.Font.Size-4, 1),
		cfg.Font.Size,
		max(cfg.Font.Size-3, 1), escapeXML(cfg.Colors.Muted))
}

// drawLegend draws the shading patches and one dashed sample per marker,
// centered in the bottom margin, then the footer.
func (r *Renderer) drawLegend(svg *svgWriter, markers []scenario.Marker, height float64) {
	cfg := r.cfg
	const (
		swatch = 24.0
		gap    = 8.0
		space  = 28.0
	)

	type item struct {
		label string
		draw  func(x, y float64)
	}
	patch := func(color string) func(x, y float64) {
		return func(x, y float64) {
			svg.rect(x, y-6, swatch, 12, fmt.Sprintf(`fill="%s" fill-opacity="%.2f"`,
				escapeXML(color), cfg.Colors.ShadeOpacity))
		}
	}
	items := []item{
		{cfg.Legend.Aligned, patch(cfg.Colors.Aligned)},
		{cfg.Legend.Misaligned, patch(cfg.Colors.Misaligned)},
	}
	for _, m := range markers {
		color := m.Color
		items = append(items, item{m.Label, func(x, y float64) {
			svg.line(x, y, x+swatch, y, fmt.Sprintf(`stroke="%s" stroke-width="1.5" stroke-dasharray="6,4"`, escapeXML(color)))
		}})
	}

	total := 0.0
	for i, it := range items {
		total += swatch + gap + estimateTextWidth(it.label, cfg.Font.Size)
		if i > 0 {
			total += space
		}
	}

	y := height - float64(cfg.Layout.MarginBottom)/2
	x := (float64(cfg.Layout.Width) - total) / 2
	svg.printf(`<g class="legend-items">`)
	for _, it := range items {
		it.draw(x, y)
		x += swatch + gap
		svg.text(x, y+float64(cfg.Font.Size)/3, "legend", "start", it.label)
		x += estimateTextWidth(it.label, cfg.Font.Size) + space
	}
	svg.printf(`</g>`)

	if strings.TrimSpace(cfg.Legend.Footer) != "" {
		svg.text(float64(cfg.Layout.Width)-10, height-8, "footer", "end", cfg.Legend.Footer)
	}
}
