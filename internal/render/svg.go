package render

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// svgWriter appends SVG elements to a string builder.
type svgWriter struct {
	b strings.Builder
}

func (w *svgWriter) printf(format string, args ...any) {
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

func (w *svgWriter) String() string {
	return w.b.String()
}

// rect draws a filled rectangle. Zero or negative sizes are skipped.
func (w *svgWriter) rect(x, y, width, height float64, attrs string) {
	if width <= 0 || height <= 0 {
		return
	}
	w.printf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" %s/>`, x, y, width, height, attrs)
}

func (w *svgWriter) line(x1, y1, x2, y2 float64, attrs string) {
	w.printf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" %s/>`, x1, y1, x2, y2, attrs)
}

func (w *svgWriter) text(x, y float64, class, anchor, content string) {
	w.printf(`<text x="%.1f" y="%.1f" class="%s" text-anchor="%s">%s</text>`, x, y, class, anchor, escapeXML(content))
}

// estimateTextWidth estimates the width of text in pixels: an average
// character is about 0.6 * font size wide. Characters are counted as runes
// so Polish diacritics are not counted twice.
func estimateTextWidth(text string, fontSize int) float64 {
	return float64(utf8.RuneCountInString(text)) * float64(fontSize) * 0.6
}

// lineHeight is the vertical space one line of text takes.
func lineHeight(fontSize int) float64 {
	return float64(fontSize) * 1.5
}

// wrapText wraps words into lines of at most maxRunes characters. Words are
// never broken: a word longer than maxRunes gets a line of its own.
func wrapText(words []string, maxRunes int) []string {
	if len(words) == 0 {
		return []string{}
	}

	var lines []string
	var current strings.Builder
	currentLen := 0

	for _, word := range words {
		n := utf8.RuneCountInString(word)
		switch {
		case currentLen == 0:
			current.WriteString(word)
			currentLen = n
		case currentLen+1+n <= maxRunes:
			current.WriteString(" " + word)
			currentLen += 1 + n
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			currentLen = n
		}
	}
	if currentLen > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// fitLine splits one line of text into lines no wider than width pixels.
// Blank lines are kept so intentional spacing in titles survives.
func fitLine(line string, fontSize int, width float64) []string {
	if strings.TrimSpace(line) == "" || estimateTextWidth(line, fontSize) <= width {
		return []string{line}
	}
	maxRunes := int(width / (float64(fontSize) * 0.6))
	if maxRunes < 1 {
		maxRunes = 1
	}
	return wrapText(strings.Fields(line), maxRunes)
}

// escapeXML escapes special XML characters in a string to ensure valid SVG output.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
