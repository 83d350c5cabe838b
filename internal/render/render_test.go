package render

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"politimeline/internal/config"
	"politimeline/internal/period"
	"politimeline/internal/scenario"
)

func defaultDoc(t *testing.T) *scenario.Document {
	t.Helper()
	doc, err := scenario.Default()
	require.NoError(t, err)
	return doc
}

func onlyScenario(t *testing.T, id string) *scenario.Document {
	t.Helper()
	doc := defaultDoc(t)
	for _, s := range doc.Scenarios {
		if s.ID == id {
			doc.Scenarios = []scenario.Scenario{s}
			return doc
		}
	}
	t.Fatalf("no scenario %s", id)
	return nil
}

func renderDoc(t *testing.T, cfg config.Config, doc *scenario.Document) string {
	t.Helper()
	r, err := New(cfg)
	require.NoError(t, err)
	out, err := r.Render(doc)
	require.NoError(t, err)
	return out
}

func assertWellFormed(t *testing.T, svg string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(svg))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
	}
}

func TestRender_DefaultDocument(t *testing.T) {
	svg := renderDoc(t, config.DefaultConfig(), defaultDoc(t))
	assertWellFormed(t, svg)

	assert.True(t, strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
	assert.Equal(t, 4, strings.Count(svg, `<g class="panel"`))
	for _, id := range []string{"A", "B", "C", "D"} {
		assert.Contains(t, svg, `id="scenario-`+id+`"`)
	}

	// Presidents by full name, prime ministers by initials.
	assert.Contains(t, svg, ">Aleksander Kwaśniewski</text>")
	assert.Contains(t, svg, ">DT</text>")
	assert.NotContains(t, svg, ">Donald Tusk</text>")

	assert.Contains(t, svg, ">Okres zgodności</text>")
	assert.Contains(t, svg, ">Wybory parlamentarne 2027</text>")
	assert.Contains(t, svg, ">@ks</text>")
	assert.Contains(t, svg, `fill="#aed9e0"`)
}

func TestRender_ShadingFollowsComplement(t *testing.T) {
	svg := renderDoc(t, config.DefaultConfig(), onlyScenario(t, "C"))
	assertWellFormed(t, svg)

	assert.Equal(t, 5, strings.Count(svg, `class="misaligned"`))
	assert.Equal(t, 4, strings.Count(svg, `class="aligned"`))

	// 2023.12 -> 2030.08 misaligned, 2015.11 -> 2023.12 aligned.
	assert.Contains(t, svg, ">6.7 lat</text>")
	assert.Contains(t, svg, ">8.1 lat</text>")
	// 2005.10 -> 2005.12 is too short for a label.
	assert.NotContains(t, svg, ">0.2 lat</text>")
}

func TestRender_DurationLabelsOff(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DurationLabel.Show = false
	svg := renderDoc(t, cfg, onlyScenario(t, "A"))
	assert.NotContains(t, svg, `class="duration"`)
}

func TestRender_NarrowWindow(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Window.End = period.MustYearMonth(2010, time.January)
	svg := renderDoc(t, cfg, onlyScenario(t, "A"))

	// 2000.01-2001.10, 2005.10-2005.12, 2007.11-2010.01
	assert.Equal(t, 3, strings.Count(svg, `class="misaligned"`))
	assert.Equal(t, 2, strings.Count(svg, `class="aligned"`))
}

func TestRender_EscapesText(t *testing.T) {
	doc := onlyScenario(t, "B")
	doc.Scenarios[0].Title = `Left <&> "Right"`
	svg := renderDoc(t, config.DefaultConfig(), doc)
	assertWellFormed(t, svg)
	assert.Contains(t, svg, "Left &lt;&amp;&gt; &quot;Right&quot;")
}

func TestRender_MultiLineTitle(t *testing.T) {
	svg := renderDoc(t, config.DefaultConfig(), onlyScenario(t, "A"))
	assert.Equal(t, 2, strings.Count(svg, `class="title"`))
	assert.Contains(t, svg, `class="subtitle" text-anchor="middle">(około 5 lat współpracy)</text>`)
}

func TestRender_Errors(t *testing.T) {
	r, err := New(config.DefaultConfig())
	require.NoError(t, err)

	doc := onlyScenario(t, "A")
	doc.Scenarios[0].Tenures[0].Category = "Zieloni"
	_, err = r.Render(doc)
	assert.ErrorIs(t, err, ErrUnknownCategory)

	doc = onlyScenario(t, "A")
	doc.Scenarios[0].Tenures[0].Office = "Marszałek"
	_, err = r.Render(doc)
	assert.ErrorIs(t, err, ErrUnknownOffice)

	doc = onlyScenario(t, "A")
	doc.Scenarios[0].Aligned = append(doc.Scenarios[0].Aligned, period.Span{
		Start: period.MustYearMonth(2020, time.January),
		End:   period.MustYearMonth(2019, time.January),
	})
	_, err = r.Render(doc)
	assert.ErrorIs(t, err, period.ErrInvertedInterval)

	_, err = r.Render(&scenario.Document{})
	assert.Error(t, err)
}

func TestNew_RejectsInvertedWindow(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Window.Start, cfg.Window.End = cfg.Window.End, cfg.Window.Start
	_, err := New(cfg)
	assert.ErrorIs(t, err, period.ErrInvertedInterval)
}

func TestRenderer_X(t *testing.T) {
	cfg := config.DefaultConfig()
	r, err := New(cfg)
	require.NoError(t, err)

	left := float64(cfg.Layout.MarginLeft)
	right := float64(cfg.Layout.Width - cfg.Layout.MarginRight)
	assert.InDelta(t, left, r.x(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)), 1e-9)
	assert.InDelta(t, right, r.x(time.Date(2032, 1, 1, 0, 0, 0, 0, time.UTC)), 1e-9)
	assert.InDelta(t, left, r.x(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)), 1e-9)
	assert.InDelta(t, right, r.x(time.Date(2040, 1, 1, 0, 0, 0, 0, time.UTC)), 1e-9)

	mid := r.x(time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.InDelta(t, (left+right)/2, mid, 1)
}

func TestEstimateTextWidth_CountsRunes(t *testing.T) {
	assert.InDelta(t, estimateTextWidth("Szydło", 10), estimateTextWidth("Szydlo", 10), 1e-9)
	assert.InDelta(t, 36.0, estimateTextWidth("Szydło", 10), 1e-9)
}

func TestRender_WrapsLongTitle(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Layout.Width = 400
	cfg.Layout.MarginLeft = 50
	cfg.Layout.MarginRight = 50

	doc := onlyScenario(t, "C")
	// 300px plot at 7.2px per character fits 41 characters per line.
	doc.Scenarios[0].Title = strings.Repeat("abcdefghi ", 10)
	svg := renderDoc(t, cfg, doc)
	assert.Equal(t, 3, strings.Count(svg, `class="title"`))
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{}, wrapText(nil, 10))
	assert.Equal(t, []string{"Opcja B:", "Trzaskowski", "jako", "prezydent"},
		wrapText(strings.Fields("Opcja B: Trzaskowski jako prezydent"), 9))
	assert.Equal(t, []string{"Łódź łódź", "łódź"}, wrapText(strings.Fields("Łódź łódź łódź"), 9))
}

func TestFitLine_KeepsBlankAndShortLines(t *testing.T) {
	assert.Equal(t, []string{""}, fitLine("", 12, 10))
	assert.Equal(t, []string{"short"}, fitLine("short", 12, 1000))
}

func TestRenderFigure_Size(t *testing.T) {
	r, err := New(config.DefaultConfig())
	require.NoError(t, err)
	fig, err := r.RenderFigure(defaultDoc(t))
	require.NoError(t, err)

	assert.Equal(t, 1600, fig.Width)
	assert.Greater(t, fig.Height, 4*2*60)
	assert.Contains(t, fig.SVG, fmt.Sprintf(`height="%d"`, fig.Height))
}
