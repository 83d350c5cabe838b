package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"politimeline/internal/period"
	"politimeline/internal/scenario"
)

// panel is the computed layout of one scenario.
type panel struct {
	scenario scenario.Scenario

	top        float64 // top of the title block
	plotTop    float64 // top of the first office row
	plotBottom float64 // bottom of the last office row
	height     float64

	titleLines []string
	tenures    []placedTenure
	aligned    []period.Interval
	misaligned []period.Interval
}

// placedTenure is a tenure resolved to its row, color and label.
type placedTenure struct {
	interval period.Interval
	row      int
	color    string
	label    string
}

// layoutPanel resolves a scenario against the document and config and
// computes its vertical extent starting at top.
func (r *Renderer) layoutPanel(doc *scenario.Document, s scenario.Scenario, top float64) (*panel, error) {
	cfg := r.cfg
	p := &panel{scenario: s, top: top}

	if s.Title != "" {
		for _, line := range strings.Split(s.Title, "\n") {
			p.titleLines = append(p.titleLines, fitLine(line, cfg.Font.Size, r.plotRight()-r.plotLeft())...)
		}
	}
	header := float64(len(p.titleLines)) * lineHeight(cfg.Font.Size)
	if s.Subtitle != "" {
		header += lineHeight(cfg.Font.Size)
	}
	if header > 0 {
		header += float64(cfg.Font.Size) / 2
	}

	p.plotTop = top + header
	p.plotBottom = p.plotTop + float64(len(doc.Offices)*cfg.Layout.RowSpacing)
	p.height = p.plotBottom - top + float64(cfg.Layout.AxisHeight)

	for _, t := range s.Tenures {
		office, row, ok := doc.Office(t.Office)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownOffice, "%q (tenure %q)", t.Office, t.Name)
		}
		color, ok := cfg.CategoryColor(t.Category)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownCategory, "%q (tenure %q)", t.Category, t.Name)
		}
		iv, err := t.Interval()
		if err != nil {
			return nil, errors.Wrapf(err, "tenure %q", t.Name)
		}
		p.tenures = append(p.tenures, placedTenure{
			interval: iv,
			row:      row,
			color:    color,
			label:    office.DisplayName(t.Name),
		})
	}

	aligned, err := s.AlignedIntervals()
	if err != nil {
		return nil, errors.Wrap(err, "aligned periods")
	}
	p.misaligned = period.Complement(aligned, r.window)
	for _, iv := range aligned {
		if c, ok := iv.Clip(r.window); ok {
			p.aligned = append(p.aligned, c)
		}
	}
	return p, nil
}

// rowCenter returns the vertical center of an office row.
func (r *Renderer) rowCenter(p *panel, row int) float64 {
	spacing := float64(r.cfg.Layout.RowSpacing)
	return p.plotTop + spacing*float64(row) + spacing/2
}

func (r *Renderer) drawPanel(svg *svgWriter, doc *scenario.Document, p *panel) {
	cfg := r.cfg
	left, right := r.plotLeft(), r.plotRight()
	center := left + (right-left)/2
	lh := lineHeight(cfg.Font.Size)

	svg.printf(`<g class="panel" id="%s">`, escapeXML("scenario-"+p.scenario.ID))

	y := p.top
	for _, line := range p.titleLines {
		y += lh
		if strings.TrimSpace(line) != "" {
			svg.text(center, y, "title", "middle", line)
		}
	}
	if p.scenario.Subtitle != "" {
		y += lh
		svg.text(center, y, "subtitle", "middle", p.scenario.Subtitle)
	}

	plotHeight := p.plotBottom - p.plotTop
	svg.rect(left, p.plotTop, right-left, plotHeight, fmt.Sprintf(`fill="%s"`, escapeXML(cfg.Colors.Background)))

	r.drawShading(svg, p, p.misaligned, cfg.Colors.Misaligned, "misaligned")
	r.drawShading(svg, p, p.aligned, cfg.Colors.Aligned, "aligned")

	for _, m := range doc.Markers {
		x := r.x(m.Date.Date())
		svg.line(x, p.plotTop, x, p.plotBottom,
			fmt.Sprintf(`stroke="%s" stroke-width="1.2" stroke-dasharray="6,4"`, escapeXML(m.Color)))
	}

	r.drawDurationLabels(svg, p, p.misaligned)
	r.drawDurationLabels(svg, p, p.aligned)

	for _, t := range p.tenures {
		r.drawTenure(svg, p, t)
	}

	r.drawAxes(svg, doc, p)
	svg.printf(`</g>`)
}

func (r *Renderer) drawShading(svg *svgWriter, p *panel, intervals []period.Interval, color, class string) {
	attrs := fmt.Sprintf(`class="%s" fill="%s" fill-opacity="%.2f"`, class, escapeXML(color), r.cfg.Colors.ShadeOpacity)
	for _, iv := range intervals {
		x1, x2 := r.x(iv.Start), r.x(iv.End)
		svg.rect(x1, p.plotTop, x2-x1, p.plotBottom-p.plotTop, attrs)
	}
}

// drawDurationLabels writes "N.N lat" on every segment longer than the
// configured minimum, halfway down the rows.
func (r *Renderer) drawDurationLabels(svg *svgWriter, p *panel, intervals []period.Interval) {
	dl := r.cfg.DurationLabel
	if !dl.Show {
		return
	}
	fontSize := max(r.cfg.Font.Size-4, 1)
	y := p.plotTop + (p.plotBottom-p.plotTop)/2

	for _, iv := range intervals {
		years := iv.Years()
		if years <= dl.MinYears {
			continue
		}
		text := fmt.Sprintf("%.1f%s", years, dl.Suffix)
		x := r.x(iv.Midpoint())
		w := estimateTextWidth(text, fontSize) + 8
		h := float64(fontSize) + 6
		svg.rect(x-w/2, y-h/2, w, h, `rx="4" fill="#ffffff"`)
		svg.text(x, y+float64(fontSize)/3, "duration", "middle", text)
	}
}

func (r *Renderer) drawTenure(svg *svgWriter, p *panel, t placedTenure) {
	cfg := r.cfg
	x1, x2 := r.x(t.interval.Start), r.x(t.interval.End)
	cy := r.rowCenter(p, t.row)
	bar := float64(cfg.Layout.BarHeight)

	svg.rect(x1, cy-bar/2, x2-x1, bar, fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="1"`,
		escapeXML(t.color), escapeXML(cfg.Colors.BarEdge)))
	if t.label == "" || x2 <= x1 {
		return
	}

	mid := x1 + (x2-x1)/2
	w := estimateTextWidth(t.label, cfg.Font.Size)
	h := float64(cfg.Font.Size) + 2
	svg.rect(mid-w/2, cy-h/2, w, h, fmt.Sprintf(`fill="%s"`, escapeXML(t.color)))
	svg.text(mid, cy+float64(cfg.Font.Size)/3, "name", "middle", t.label)
}

func (r *Renderer) drawAxes(svg *svgWriter, doc *scenario.Document, p *panel) {
	cfg := r.cfg
	left := r.plotLeft()
	tickAttrs := fmt.Sprintf(`stroke="%s" stroke-width="1"`, escapeXML(cfg.Colors.Text))

	for i, o := range doc.Offices {
		cy := r.rowCenter(p, i)
		svg.line(left-5, cy, left, cy, tickAttrs)
		svg.text(left-10, cy+float64(cfg.Font.Size)/3, "office", "end", o.Name)
	}

	for year := cfg.Axis.StartYear; year < cfg.Axis.EndYear; year += cfg.Axis.TickStep {
		x := r.x(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
		svg.line(x, p.plotBottom, x, p.plotBottom+1, tickAttrs)
		svg.text(x, p.plotBottom+float64(cfg.Font.Size)+6, "tick", "middle", fmt.Sprint(year))
	}
}
