/*
Package period converts compact YYYY.MM date encodings into calendar dates
and performs the interval arithmetic behind alignment shading: sorting,
merging and complementing sets of date ranges inside a bounding window.
*/
package period

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDateEncoding is returned when a YYYY.MM value does not decode to
// a month in [1, 12].
var ErrInvalidDateEncoding = errors.New("invalid YYYY.MM date encoding")

// monthEpsilon bounds the floating-point error tolerated when decoding the
// month digits of a float encoding.
const monthEpsilon = 1e-6

// YearMonth is a calendar year and month, written as YYYY.MM in data files.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth returns a validated YearMonth.
func NewYearMonth(year int, month time.Month) (YearMonth, error) {
	if year < 1 {
		return YearMonth{}, errors.Wrapf(ErrInvalidDateEncoding, "year %d", year)
	}
	if month < time.January || month > time.December {
		return YearMonth{}, errors.Wrapf(ErrInvalidDateEncoding, "month %d", int(month))
	}
	return YearMonth{Year: year, Month: month}, nil
}

// MustYearMonth is like NewYearMonth but panics on invalid input.
// Only use it for literals.
func MustYearMonth(year int, month time.Month) YearMonth {
	ym, err := NewYearMonth(year, month)
	if err != nil {
		panic(err)
	}
	return ym
}

// ParseYearMonth decodes the textual YYYY.MM form digit by digit so that no
// binary floating-point rounding is involved.
//
// The fraction must have one or two digits. A single digit is the tens digit,
// the same value the literal has as a number: "2005.1" and "2005.10" are both
// October 2005, "2005.01" is January.
func ParseYearMonth(s string) (YearMonth, error) {
	s = strings.TrimSpace(s)
	intPart, fracPart, found := strings.Cut(s, ".")
	if !found {
		return YearMonth{}, errors.Wrapf(ErrInvalidDateEncoding, "%q has no month digits", s)
	}

	year, err := strconv.Atoi(intPart)
	if err != nil {
		return YearMonth{}, errors.Wrapf(ErrInvalidDateEncoding, "%q: bad year", s)
	}

	switch len(fracPart) {
	case 1:
		fracPart += "0"
	case 2:
	default:
		return YearMonth{}, errors.Wrapf(ErrInvalidDateEncoding, "%q: month must have one or two digits", s)
	}
	if fracPart[0] < '0' || fracPart[0] > '9' || fracPart[1] < '0' || fracPart[1] > '9' {
		return YearMonth{}, errors.Wrapf(ErrInvalidDateEncoding, "%q: bad month", s)
	}
	month := int(fracPart[0]-'0')*10 + int(fracPart[1]-'0')

	ym, err := NewYearMonth(year, time.Month(month))
	if err != nil {
		return YearMonth{}, errors.Wrapf(err, "decoding %q", s)
	}
	return ym, nil
}

// YearMonthFromFloat decodes the numeric YYYY.MM form: the integer part is
// the year and the first two decimal digits are the month. The month digits
// must land within monthEpsilon of an integer, otherwise the value is
// rejected rather than rounded to a neighbouring month.
func YearMonthFromFloat(v float64) (YearMonth, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return YearMonth{}, errors.Wrapf(ErrInvalidDateEncoding, "%v", v)
	}
	year := math.Floor(v)
	m := (v - year) * 100
	month := math.Round(m)
	if math.Abs(m-month) > monthEpsilon {
		return YearMonth{}, errors.Wrapf(ErrInvalidDateEncoding, "%v: month digits %.6f are not whole", v, m)
	}

	ym, err := NewYearMonth(int(year), time.Month(int(month)))
	if err != nil {
		return YearMonth{}, errors.Wrapf(err, "decoding %v", v)
	}
	return ym, nil
}

// Date returns the first day of the month at midnight UTC.
func (ym YearMonth) Date() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether ym is the zero value.
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d.%02d", ym.Year, int(ym.Month))
}

// UnmarshalYAML reads the scalar's source text instead of letting the
// decoder turn 2005.10 into the float 2005.1 first.
func (ym *YearMonth) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Wrapf(ErrInvalidDateEncoding, "line %d: expected a YYYY.MM scalar", node.Line)
	}
	parsed, err := ParseYearMonth(node.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*ym = parsed
	return nil
}

// MarshalYAML writes ym as an unquoted YYYY.MM scalar.
func (ym YearMonth) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: ym.String()}, nil
}
