package printers

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/annals/pkg/event"
	"tableflip.dev/annals/pkg/timeline"
)

const (
	// DefaultChartColumnWidth is the width of one region column in cells.
	DefaultChartColumnWidth = 24
	// cellPixels converts terminal cells to the pixel units of a plan.
	cellPixels = 8.0
	// ChartGutter is the width of the year label column.
	ChartGutter = 10
)

// Chart draws plan as text, one line per scale row. Each block starts with
// its name on the row of its start year and continues with a bar.
func Chart(plan timeline.Plan[event.Event], columnWidth int) string {
	if columnWidth < 4 {
		columnWidth = DefaultChartColumnWidth
	}
	s := plan.Scale
	rows := s.Rows()
	if rows == 0 {
		rows = 1
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", ChartGutter))
	for _, c := range plan.Columns {
		b.WriteString("│")
		b.WriteString(runewidth.FillRight(truncate.StringWithTail(c.Region, uint(columnWidth), "…"), columnWidth))
	}
	b.WriteString("\n")

	grids := make([]*grid, len(plan.Columns))
	for i, c := range plan.Columns {
		g := newGrid(rows, columnWidth)
		for _, blk := range c.Blocks {
			g.draw(blk, s.RowHeight)
		}
		grids[i] = g
	}

	labels := make(map[int]string, len(plan.Labels))
	for _, l := range plan.Labels {
		r := int(l.Top / s.RowHeight)
		if _, taken := labels[r]; !taken && r < rows {
			labels[r] = l.Text
		}
	}

	for r := 0; r < rows; r++ {
		b.WriteString(runewidth.FillRight(runewidth.Truncate(labels[r], ChartGutter-1, ""), ChartGutter))
		for _, g := range grids {
			b.WriteString("│")
			b.WriteString(g.line(r))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// grid is a rows x width array of display cells. A wide rune occupies its
// cell and leaves the next one empty.
type grid struct {
	cells [][]string
	width int
}

func newGrid(rows, width int) *grid {
	cells := make([][]string, rows)
	for r := range cells {
		cells[r] = make([]string, width)
		for c := range cells[r] {
			cells[r][c] = " "
		}
	}
	return &grid{cells: cells, width: width}
}

func (g *grid) draw(blk timeline.Block[event.Event], rowHeight float64) {
	if rowHeight <= 0 {
		return
	}
	colPx := float64(g.width) * cellPixels
	left := int(math.Round(blk.Geometry.Left.Resolve(colPx) / cellPixels))
	width := int(math.Floor(blk.Geometry.Width.Resolve(colPx) / cellPixels))
	if width < 1 {
		width = 1
	}
	if left+width > g.width {
		width = g.width - left
	}
	if width < 1 {
		return
	}

	top := int(blk.Geometry.Top / rowHeight)
	bottom := int(math.Ceil((blk.Geometry.Top+blk.Geometry.Height)/rowHeight)) - 1
	if bottom < top {
		bottom = top
	}
	for r := top; r <= bottom && r < len(g.cells); r++ {
		if r < 0 {
			continue
		}
		if r == top {
			g.write(r, left, width, blk.Item.Name)
			continue
		}
		g.write(r, left, 1, "│")
	}
}

// write puts text into row r starting at cell x, truncated to width cells.
func (g *grid) write(r, x, width int, text string) {
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, "…")
	}
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > g.width {
			return
		}
		g.cells[r][x] = string(ch)
		for i := 1; i < w; i++ {
			g.cells[r][x+i] = ""
		}
		x += w
	}
}

func (g *grid) line(r int) string {
	return strings.Join(g.cells[r], "")
}
