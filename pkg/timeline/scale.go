// Package timeline lays out year-ranged events into region columns and lanes.
//
// Everything in this package is a pure function of its inputs. Callers own the
// event and region snapshots; nothing here mutates them or caches results
// between calls.
package timeline

import "math"

const (
	// DefaultRowHeight is the pixel height of one display row.
	DefaultRowHeight = 60.0
	// DefaultYearsPerRow is the zoom factor a new session starts with.
	DefaultYearsPerRow = 100
	// DefaultLabelInterval is the year label spacing for DefaultYearsPerRow.
	DefaultLabelInterval = 100
)

// Scale maps years onto vertical pixels.
//
// Pixels per year is not stored; it is derived from RowHeight and YearsPerRow
// on every use.
type Scale struct {
	StartYear         int     `json:"startYear"`
	EndYear           int     `json:"endYear"`
	YearsPerRow       int     `json:"yearsPerRow"`
	RowHeight         float64 `json:"rowHeight"`
	YearLabelInterval int     `json:"yearLabelInterval"`
}

// DefaultScale returns the scale used before any data is loaded.
func DefaultScale() Scale {
	b := DefaultBounds()
	return Scale{
		StartYear:         b.StartYear,
		EndYear:           b.EndYear,
		YearsPerRow:       DefaultYearsPerRow,
		RowHeight:         DefaultRowHeight,
		YearLabelInterval: DefaultLabelInterval,
	}
}

// WithBounds returns a copy of s spanning b.
func (s Scale) WithBounds(b Bounds) Scale {
	s.StartYear = b.StartYear
	s.EndYear = b.EndYear
	return s
}

// PixelsPerYear is RowHeight / YearsPerRow. A non-positive YearsPerRow yields 0.
func (s Scale) PixelsPerYear() float64 {
	if s.YearsPerRow <= 0 {
		return 0
	}
	return s.RowHeight / float64(s.YearsPerRow)
}

// Height is the pixel height of the whole visible range.
func (s Scale) Height() float64 {
	return float64(s.EndYear-s.StartYear) * s.PixelsPerYear()
}

// YearToPixel returns the vertical offset of year from the top of the scale.
func YearToPixel(year int, s Scale) float64 {
	return float64(year-s.StartYear) * s.PixelsPerYear()
}

// PixelToYear is the inverse of YearToPixel. It returns StartYear when the
// scale has no extent.
func PixelToYear(px float64, s Scale) float64 {
	ppy := s.PixelsPerYear()
	if ppy == 0 {
		return float64(s.StartYear)
	}
	return float64(s.StartYear) + px/ppy
}

// Label is one year tick on the time axis.
type Label struct {
	Year int     `json:"year"`
	Top  float64 `json:"top"`
	Text string  `json:"text"`
}

// Labels returns the year ticks from StartYear to EndYear inclusive.
func (s Scale) Labels() []Label {
	step := s.YearLabelInterval
	if step <= 0 || s.EndYear < s.StartYear {
		return nil
	}
	labels := make([]Label, 0, (s.EndYear-s.StartYear)/step+1)
	for year := s.StartYear; year <= s.EndYear; year += step {
		labels = append(labels, Label{
			Year: year,
			Top:  YearToPixel(year, s),
			Text: FormatYear(year),
		})
	}
	return labels
}

// Rows is the number of display rows the scale occupies, rounded up.
func (s Scale) Rows() int {
	if s.RowHeight <= 0 {
		return 0
	}
	return int(math.Ceil(s.Height() / s.RowHeight))
}
