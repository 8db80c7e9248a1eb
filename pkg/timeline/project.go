package timeline

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// MinBlockHeight keeps zero and negative duration events visible.
	MinBlockHeight = 20.0
	// LaneMargin is the absolute horizontal gap carved out of every lane,
	// split evenly between its left and right edge.
	LaneMargin = 4.0
)

// Extent is a horizontal measure relative to the column width: a percentage
// of the column plus a fixed pixel offset.
type Extent struct {
	Percent float64 `json:"percent"`
	Offset  float64 `json:"offset"`
}

// Resolve converts e to pixels for a column of the given width.
func (e Extent) Resolve(columnWidth float64) float64 {
	return columnWidth*e.Percent/100 + e.Offset
}

// String renders e as a CSS length, e.g. "calc(50% - 4px)".
func (e Extent) String() string {
	pct := strconv.FormatFloat(e.Percent, 'f', -1, 64)
	switch {
	case e.Offset == 0:
		return pct + "%"
	case e.Offset < 0:
		return fmt.Sprintf("calc(%s%% - %spx)", pct, strconv.FormatFloat(-e.Offset, 'f', -1, 64))
	default:
		return fmt.Sprintf("calc(%s%% + %spx)", pct, strconv.FormatFloat(e.Offset, 'f', -1, 64))
	}
}

// Geometry is the placement of one block inside its region column.
type Geometry struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
	Left   Extent  `json:"left"`
	Width  Extent  `json:"width"`
}

// Project places an interval that AssignLanes put in lane out of total lanes.
// Lanes split the column evenly; the block height is never below
// MinBlockHeight.
//
// total must be at least 1. Any lane assignment produced by AssignLanes
// satisfies that, so a zero here is a programming error and panics.
func Project(start, end, lane, total int, s Scale) Geometry {
	if total <= 0 {
		panic(fmt.Sprintf("timeline: project with %d lanes", total))
	}
	if lane < 0 || lane >= total {
		panic(fmt.Sprintf("timeline: lane %d outside %d lanes", lane, total))
	}
	height := float64(end-start) * s.PixelsPerYear()
	return Geometry{
		Top:    YearToPixel(start, s),
		Height: math.Max(MinBlockHeight, height),
		Left: Extent{
			Percent: float64(lane) / float64(total) * 100,
			Offset:  LaneMargin / 2,
		},
		Width: Extent{
			Percent: 100 / float64(total),
			Offset:  -LaneMargin,
		},
	}
}
