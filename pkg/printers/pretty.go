// Package printers writes sessions, events and layout plans to a terminal.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/annals/pkg/event"
	"tableflip.dev/annals/pkg/timeline"
)

// DescriptionWidth bounds the description column of the events table.
const DescriptionWidth = 40

type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(pp.out(), format, args...)
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Events prints one row per event, sub-events indented under their parent
// when the parent is in the list.
func (pp *PrettyPrint) Events(events []event.Event) {
	if len(events) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow(bold("ID"), bold("Name"), bold("Period"), bold("Region"), bold("Description"))
	} else {
		tbl.AddRow(bold("Name"), bold("Period"), bold("Region"), bold("Description"))
	}
	for _, e := range ordered(events) {
		name := e.Name
		if e.HasParent() {
			name = "  └ " + name
		}
		desc := faint(truncate.StringWithTail(e.Description, DescriptionWidth, "…"))
		if pp.ShowID {
			tbl.AddRow(strconv.Itoa(e.ID), name, e.Period(), e.Region, desc)
		} else {
			tbl.AddRow(name, e.Period(), e.Region, desc)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// ordered places each event right after its parent, keeping creation order
// otherwise. Events whose parent is missing stay at top level.
func ordered(events []event.Event) []event.Event {
	present := make(map[int]bool, len(events))
	for _, e := range events {
		present[e.ID] = true
	}
	children := make(map[int][]event.Event)
	var roots []event.Event
	for _, e := range events {
		if e.HasParent() && present[*e.ParentID] && *e.ParentID != e.ID {
			children[*e.ParentID] = append(children[*e.ParentID], e)
			continue
		}
		roots = append(roots, e)
	}
	out := make([]event.Event, 0, len(events))
	seen := make(map[int]bool, len(events))
	var walk func(e event.Event)
	walk = func(e event.Event) {
		if seen[e.ID] {
			return
		}
		seen[e.ID] = true
		out = append(out, e)
		for _, c := range children[e.ID] {
			walk(c)
		}
	}
	for _, e := range roots {
		walk(e)
	}
	// Parent cycles have no root; keep them anyway.
	for _, e := range events {
		walk(e)
	}
	return out
}

// Regions prints the taxonomy with ids, subregions indented.
func (pp *PrettyPrint) Regions(regions []event.Region) {
	if len(regions) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("ID"), bold("Region"))
	for _, r := range regions {
		tbl.AddRow(faint(r.ID), r.Name)
		for _, s := range r.Subregions {
			tbl.AddRow(faint(s.ID), "  └ "+s.Name)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Plan prints the geometry of every block.
func (pp *PrettyPrint) Plan(plan timeline.Plan[event.Event]) {
	s := plan.Scale
	pp.Title(fmt.Sprintf("%s to %s, %d years per row", timeline.FormatYear(s.StartYear), timeline.FormatYear(s.EndYear), s.YearsPerRow))
	if len(plan.Columns) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Region"), bold("Lane"), bold("Event"), bold("Top"), bold("Height"), bold("Left"), bold("Width"))
	for _, c := range plan.Columns {
		if len(c.Blocks) == 0 {
			tbl.AddRow(c.Region, "-", "", "", "", "", "")
			continue
		}
		for _, b := range c.Blocks {
			name := b.Item.Name
			if b.Malformed {
				name = color.New(color.FgYellow).Sprint(name + " (end before start)")
			}
			tbl.AddRow(
				c.Region,
				fmt.Sprintf("%d/%d", b.Lane+1, c.Lanes),
				name,
				px(b.Geometry.Top),
				px(b.Geometry.Height),
				b.Geometry.Left.String(),
				b.Geometry.Width.String(),
			)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	if n := len(plan.Excluded); n > 0 {
		names := make([]string, 0, n)
		for _, e := range plan.Excluded {
			names = append(names, e.Name)
		}
		_, _ = color.New(color.Faint).Fprintf(pp.out(), "hidden: %s\n", strings.Join(names, ", "))
	}
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// JSON writes v indented.
func (pp *PrettyPrint) JSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}
