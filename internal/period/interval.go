package period

import (
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvertedInterval is returned when an interval's start is after its end.
var ErrInvertedInterval = errors.New("interval start is after its end")

// Interval is a continuous span of calendar time with Start <= End.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval returns the interval [start, end], rejecting start > end.
func NewInterval(start, end time.Time) (Interval, error) {
	if start.After(end) {
		return Interval{}, errors.Wrapf(ErrInvertedInterval, "%s > %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return Interval{Start: start, End: end}, nil
}

// IsEmpty reports whether the interval has zero length.
func (iv Interval) IsEmpty() bool {
	return !iv.Start.Before(iv.End)
}

// Clip returns the part of iv inside window. The second result is false
// when nothing of iv lies inside the window.
func (iv Interval) Clip(window Interval) (Interval, bool) {
	start, end := iv.Start, iv.End
	if start.Before(window.Start) {
		start = window.Start
	}
	if end.After(window.End) {
		end = window.End
	}
	if !start.Before(end) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// Midpoint returns the instant halfway between Start and End.
func (iv Interval) Midpoint() time.Time {
	return iv.Start.Add(iv.End.Sub(iv.Start) / 2)
}

// Months counts whole calendar months between the start and end months,
// ignoring days.
func (iv Interval) Months() int {
	return (iv.End.Year()-iv.Start.Year())*12 + int(iv.End.Month()) - int(iv.Start.Month())
}

// Years is Months expressed in years, the unit used for duration labels.
func (iv Interval) Years() float64 {
	return float64(iv.Months()) / 12
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s -> %s", iv.Start.Format("2006-01-02"), iv.End.Format("2006-01-02"))
}

// Span is an interval still in YYYY.MM form, as written in data files:
//
//	aligned:
//	  - [2001.10, 2005.10]
type Span struct {
	Start YearMonth
	End   YearMonth
}

// Interval decodes the span into calendar dates.
func (s Span) Interval() (Interval, error) {
	iv, err := NewInterval(s.Start.Date(), s.End.Date())
	if err != nil {
		return Interval{}, errors.Wrapf(err, "span %s", s)
	}
	return iv, nil
}

func (s Span) String() string {
	return fmt.Sprintf("[%s, %s]", s.Start, s.End)
}

// UnmarshalYAML accepts a two-element flow sequence.
func (s *Span) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: a span must be a [start, end] pair", node.Line)
	}
	var span Span
	if err := node.Content[0].Decode(&span.Start); err != nil {
		return err
	}
	if err := node.Content[1].Decode(&span.End); err != nil {
		return err
	}
	*s = span
	return nil
}

// MarshalYAML writes s as a [start, end] flow sequence.
func (s Span) MarshalYAML() (interface{}, error) {
	start, _ := s.Start.MarshalYAML()
	end, _ := s.End.MarshalYAML()
	return &yaml.Node{
		Kind:    yaml.SequenceNode,
		Style:   yaml.FlowStyle,
		Content: []*yaml.Node{start.(*yaml.Node), end.(*yaml.Node)},
	}, nil
}

// DefaultWindow is the bounding window used when the caller supplies none:
// 2000.01 to 2030.08.
func DefaultWindow() Span {
	return Span{
		Start: MustYearMonth(2000, time.January),
		End:   MustYearMonth(2030, time.August),
	}
}

// Intervals decodes every span, stopping at the first invalid one.
func Intervals(spans []Span) ([]Interval, error) {
	out := make([]Interval, 0, len(spans))
	for i, s := range spans {
		iv, err := s.Interval()
		if err != nil {
			return nil, errors.Wrapf(err, "interval %d", i)
		}
		out = append(out, iv)
	}
	return out, nil
}

// sortedCopy returns the intervals ordered by start, leaving the input as is.
func sortedCopy(intervals []Interval) []Interval {
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	return sorted
}

// Complement returns the parts of window not covered by any of the
// intervals. Input may be unsorted and overlapping. The result is sorted,
// disjoint, free of zero-length segments, and lies entirely inside the
// window. Zero-length input intervals cover nothing and are ignored.
//
// The sweep keeps a cursor that starts at window.Start and only ever moves
// forward, so an interval nested inside an earlier, longer one never pulls
// it back.
func Complement(intervals []Interval, window Interval) []Interval {
	var out []Interval
	cursor := window.Start

	for _, iv := range sortedCopy(intervals) {
		if !cursor.Before(window.End) {
			break
		}
		if iv.IsEmpty() {
			continue
		}
		if iv.Start.After(cursor) {
			end := iv.Start
			if end.After(window.End) {
				end = window.End
			}
			out = append(out, Interval{Start: cursor, End: end})
		}
		if iv.End.After(cursor) {
			cursor = iv.End
		}
	}

	if cursor.Before(window.End) {
		out = append(out, Interval{Start: cursor, End: window.End})
	}
	return out
}

// ComplementSpans decodes spans and window and returns their complement.
func ComplementSpans(spans []Span, window Span) ([]Interval, error) {
	w, err := window.Interval()
	if err != nil {
		return nil, errors.Wrap(err, "window")
	}
	intervals, err := Intervals(spans)
	if err != nil {
		return nil, err
	}
	return Complement(intervals, w), nil
}

// Union merges overlapping and touching intervals into a sorted, disjoint
// set. Zero-length intervals are dropped.
func Union(intervals []Interval) []Interval {
	var out []Interval
	for _, iv := range sortedCopy(intervals) {
		if iv.IsEmpty() {
			continue
		}
		if n := len(out); n > 0 && !iv.Start.After(out[n-1].End) {
			if iv.End.After(out[n-1].End) {
				out[n-1].End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// TotalYears sums Years over the intervals.
func TotalYears(intervals []Interval) float64 {
	var total float64
	for _, iv := range intervals {
		total += iv.Years()
	}
	return total
}
