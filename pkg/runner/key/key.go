// Package key provides CLI helpers to display the chart legend.
package key

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/termenv"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/event"
	palette "tableflip.dev/annals/pkg/render"
)

// symbols explains the marks the text chart and SVG draw.
var symbols = [][2]string{
	{"│", "column divider, or an event continuing below its name"},
	{"…", "name cut to fit its lane"},
	{"- -", "dashed SVG border: start year after end year (flag policy)"},
	{"B.C. n", "year n before the common era; year 0 is shown as 1"},
}

// Key prints the region colors and the chart symbols.
type Key struct {
	Session *app.Session
	Out     io.Writer
}

// Do renders the region and symbol keys.
func (k *Key) Do(ctx context.Context) error {
	if k.Session == nil {
		return errors.New("can not print key, no session")
	}
	out := k.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintln(out, "")
	k.Regions(out, k.Session.Regions(), k.Session.Events())
	_, _ = fmt.Fprintln(out, "")
	k.Symbols(out)
	_, _ = fmt.Fprintln(out, "")
	return nil
}

// Regions renders one row per main region with its palette swatch.
func (k *Key) Regions(out io.Writer, regions []event.Region, events []event.Event) {
	bold := color.New(color.Bold)
	term := termenv.NewOutput(out)
	pal := palette.NewPalette(regions)

	counts := make(map[string]int)
	for _, e := range events {
		if main, ok := event.MainRegion(regions, e.Region); ok {
			counts[main.Name]++
		}
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("Region"), bold.Sprint("Events"), bold.Sprint("Subregions"))
	for _, r := range regions {
		swatch := term.String("██").Foreground(term.Color(pal.Fill(r.Name).Hex()))
		subs := make([]string, 0, len(r.Subregions))
		for _, s := range r.Subregions {
			subs = append(subs, s.Name)
		}
		tbl.AddRow(swatch.String(), r.Name, counts[r.Name], strings.Join(subs, ", "))
	}
	_, _ = fmt.Fprintln(out, tbl)
}

// Symbols renders the chart symbol table.
func (k *Key) Symbols(out io.Writer) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Symbol"), bold.Sprint("Meaning"))
	for _, s := range symbols {
		tbl.AddRow(s[0], s[1])
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, tbl)
}
