package scenario

import (
	"github.com/pkg/errors"

	"politimeline/internal/period"
)

// Summary is the alignment breakdown of one scenario inside a window.
type Summary struct {
	ID              string
	Aligned         []period.Interval // merged aligned periods clipped to the window
	Misaligned      []period.Interval // complement of Aligned inside the window
	AlignedYears    float64
	MisalignedYears float64
}

// Summarize splits the window into aligned and misaligned periods.
func (s Scenario) Summarize(window period.Interval) (Summary, error) {
	aligned, err := s.AlignedIntervals()
	if err != nil {
		return Summary{}, errors.Wrapf(err, "scenario %s", s.ID)
	}

	var clipped []period.Interval
	for _, iv := range period.Union(aligned) {
		if c, ok := iv.Clip(window); ok {
			clipped = append(clipped, c)
		}
	}
	misaligned := period.Complement(aligned, window)

	return Summary{
		ID:              s.ID,
		Aligned:         clipped,
		Misaligned:      misaligned,
		AlignedYears:    period.TotalYears(clipped),
		MisalignedYears: period.TotalYears(misaligned),
	}, nil
}
