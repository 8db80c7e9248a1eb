package timeline

import (
	"errors"
	"fmt"
)

// Direction is a zoom step.
type Direction int

const (
	// ZoomOut moves to more years per row.
	ZoomOut Direction = -1
	// ZoomIn moves to fewer years per row.
	ZoomIn Direction = 1
)

// ErrUnknownZoom is returned when a years-per-row value is not a zoom level.
var ErrUnknownZoom = errors.New("timeline: unknown zoom level")

// DefaultLevels are the years-per-row steps, coarsest first.
func DefaultLevels() []int {
	return []int{500, 200, 100, 50, 20, 10}
}

// Zoom is a bounded cursor over a fixed list of years-per-row levels.
type Zoom struct {
	levels []int
	cursor int
}

// NewZoom starts at the default level (100 years per row).
func NewZoom() *Zoom {
	z := &Zoom{levels: DefaultLevels()}
	z.cursor = 2
	return z
}

// NewZoomAt starts at yearsPerRow, which must be one of the default levels.
func NewZoomAt(yearsPerRow int) (*Zoom, error) {
	z := NewZoom()
	if err := z.SetYearsPerRow(yearsPerRow); err != nil {
		return nil, err
	}
	return z, nil
}

// Levels returns a copy of the zoom levels.
func (z *Zoom) Levels() []int {
	return append([]int(nil), z.levels...)
}

// Index is the current cursor position.
func (z *Zoom) Index() int { return z.cursor }

// YearsPerRow is the level under the cursor.
func (z *Zoom) YearsPerRow() int { return z.levels[z.cursor] }

// LabelInterval is the year label spacing for the current level.
func (z *Zoom) LabelInterval() int { return LabelInterval(z.YearsPerRow()) }

// Step moves the cursor by dir, clamped to the level list. It reports whether
// the cursor moved; when it did not, nothing needs to be laid out again.
func (z *Zoom) Step(dir Direction) bool {
	next := z.cursor + int(dir)
	if next < 0 {
		next = 0
	}
	if next > len(z.levels)-1 {
		next = len(z.levels) - 1
	}
	if next == z.cursor {
		return false
	}
	z.cursor = next
	return true
}

// SetYearsPerRow jumps to the level equal to yearsPerRow.
func (z *Zoom) SetYearsPerRow(yearsPerRow int) error {
	for i, lvl := range z.levels {
		if lvl == yearsPerRow {
			z.cursor = i
			return nil
		}
	}
	return fmt.Errorf("%w: %d (want one of %v)", ErrUnknownZoom, yearsPerRow, z.levels)
}

// Apply returns s with the zoom's years-per-row and label interval.
func (z *Zoom) Apply(s Scale) Scale {
	s.YearsPerRow = z.YearsPerRow()
	s.YearLabelInterval = z.LabelInterval()
	return s
}

// LabelInterval picks the year label spacing for a zoom level: coarser zoom,
// sparser labels.
func LabelInterval(yearsPerRow int) int {
	switch {
	case yearsPerRow > 200:
		return 500
	case yearsPerRow > 50:
		return 100
	case yearsPerRow > 20:
		return 50
	default:
		return 10
	}
}

// StepScale steps the zoom and, when the level changed, returns s rescaled to
// it. The bool reports whether a re-layout is needed.
func (z *Zoom) StepScale(dir Direction, s Scale) (Scale, bool) {
	if !z.Step(dir) {
		return s, false
	}
	return z.Apply(s), true
}
