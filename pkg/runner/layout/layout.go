// Package layout prints a computed layout as a geometry table, JSON or an
// ASCII lane chart.
package layout

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/printers"
)

type Layout struct {
	Session *app.Session
	View    app.View

	// Chart draws lanes instead of listing geometry.
	Chart       bool
	ColumnWidth int

	JSON bool
	Out  io.Writer
}

func (n *Layout) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not lay out, no session")
	}
	if _, err := n.Session.ApplyView(n.View); err != nil {
		return err
	}
	plan := n.Session.Render()

	pp := printers.PrettyPrint{Out: n.Out}
	switch {
	case n.JSON:
		return pp.JSON(plan)
	case n.Chart:
		pp.Printf("%s", printers.Chart(plan, n.ColumnWidth))
	default:
		pp.Plan(plan)
	}
	return nil
}
