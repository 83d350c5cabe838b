// Package scenario loads the political timeline dataset: the tracked
// offices, who held them and when, and the periods in which both offices
// were held by the same bloc.
package scenario

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"politimeline/internal/period"
)

//go:embed default.yaml
var defaultDocument []byte

// ErrInvalidDocument wraps every validation problem found in a document.
var ErrInvalidDocument = errors.New("invalid scenario document")

// Label styles for office rows.
const (
	LabelFull     = "full"
	LabelInitials = "initials"
)

// Office is one tracked office, drawn as one row of every panel.
type Office struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"` // "full" (default) or "initials"
}

// DisplayName returns the bar label for a holder of this office.
func (o Office) DisplayName(name string) string {
	if o.Label != LabelInitials {
		return name
	}
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return b.String()
}

// Tenure is one person holding one office.
type Tenure struct {
	Name     string           `yaml:"name"`
	Start    period.YearMonth `yaml:"start"`
	End      period.YearMonth `yaml:"end"`
	Category string           `yaml:"category"` // party bloc, key into the color scheme
	Office   string           `yaml:"office"`
}

// Interval returns the tenure as calendar dates.
func (t Tenure) Interval() (period.Interval, error) {
	return period.Span{Start: t.Start, End: t.End}.Interval()
}

// Marker is a dated vertical line, e.g. an upcoming election.
type Marker struct {
	Date  period.YearMonth `yaml:"date"`
	Color string           `yaml:"color"`
	Label string           `yaml:"label"`
}

// Scenario is one panel of the figure.
type Scenario struct {
	ID       string        `yaml:"id"`
	Title    string        `yaml:"title"`
	Subtitle string        `yaml:"subtitle"`
	Tenures  []Tenure      `yaml:"tenures"`
	Aligned  []period.Span `yaml:"aligned"`
}

// AlignedIntervals decodes the aligned spans.
func (s Scenario) AlignedIntervals() ([]period.Interval, error) {
	return period.Intervals(s.Aligned)
}

// Document is a complete dataset. History and AlignedHistory are shared by
// every scenario and are folded into each scenario when the document is
// parsed.
type Document struct {
	Offices        []Office      `yaml:"offices"`
	Markers        []Marker      `yaml:"markers"`
	History        []Tenure      `yaml:"history"`
	AlignedHistory []period.Span `yaml:"aligned_history"`
	Scenarios      []Scenario    `yaml:"scenarios"`
}

// Office looks up an office by name.
func (d *Document) Office(name string) (Office, int, bool) {
	for i, o := range d.Offices {
		if o.Name == name {
			return o, i, true
		}
	}
	return Office{}, -1, false
}

// Default returns the bundled dataset: four scenarios for the Polish
// president and prime minister after the 2025 presidential election.
func Default() (*Document, error) {
	doc, err := Parse(defaultDocument)
	if err != nil {
		return nil, errors.Wrap(err, "bundled dataset")
	}
	return doc, nil
}

// Load reads a dataset from a YAML file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading data file")
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "data file %s", path)
	}
	return doc, nil
}

// Parse decodes a YAML dataset and folds the shared history into every
// scenario. It does not validate categories; see Validate.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "error parsing data")
	}
	for i := range doc.Offices {
		if doc.Offices[i].Label == "" {
			doc.Offices[i].Label = LabelFull
		}
	}
	for i := range doc.Scenarios {
		s := &doc.Scenarios[i]
		s.Tenures = append(append([]Tenure(nil), doc.History...), s.Tenures...)
		s.Aligned = append(append([]period.Span(nil), doc.AlignedHistory...), s.Aligned...)
	}
	return &doc, nil
}

// Validate checks the document against the category color scheme and
// reports every problem at once.
func (d *Document) Validate(categories map[string]string) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(d.Offices) == 0 {
		add("no offices defined")
	}
	seenOffice := make(map[string]bool)
	for _, o := range d.Offices {
		if seenOffice[o.Name] {
			add("office %q defined twice", o.Name)
		}
		seenOffice[o.Name] = true
		if o.Label != LabelFull && o.Label != LabelInitials {
			add("office %q: unknown label style %q", o.Name, o.Label)
		}
	}

	for _, m := range d.Markers {
		if m.Date.IsZero() {
			add("marker %q: missing date", m.Label)
		}
	}

	if len(d.Scenarios) == 0 {
		add("no scenarios defined")
	}
	seenID := make(map[string]bool)
	for i, s := range d.Scenarios {
		name := s.ID
		if name == "" {
			name = "#" + strconv.Itoa(i+1)
		} else if seenID[s.ID] {
			add("scenario %s: duplicate id", s.ID)
		}
		seenID[s.ID] = true

		for _, t := range s.Tenures {
			if t.Start.IsZero() || t.End.IsZero() {
				add("scenario %s: tenure %q: missing start or end", name, t.Name)
			} else if _, err := t.Interval(); err != nil {
				add("scenario %s: tenure %q: %v", name, t.Name, err)
			}
			if !seenOffice[t.Office] {
				add("scenario %s: tenure %q: unknown office %q", name, t.Name, t.Office)
			}
			if _, ok := categories[t.Category]; !ok {
				add("scenario %s: tenure %q: unknown category %q", name, t.Name, t.Category)
			}
		}
		for _, sp := range s.Aligned {
			if _, err := sp.Interval(); err != nil {
				add("scenario %s: aligned %v", name, err)
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.Wrap(ErrInvalidDocument, strings.Join(problems, "; "))
}
