// Package render writes the layout as SVG.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/logger"
	palette "tableflip.dev/annals/pkg/render"
	"tableflip.dev/annals/pkg/render/svg"
)

type Render struct {
	Session *app.Session
	View    app.View

	// Path is the output file; empty writes to Out.
	Path        string
	ColumnWidth float64

	Out io.Writer
	Log *logger.Logger
}

func (n *Render) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not render, no session")
	}
	if _, err := n.Session.ApplyView(n.View); err != nil {
		return err
	}
	plan := n.Session.Render()
	opts := svg.Options{
		ColumnWidth: n.ColumnWidth,
		Palette:     palette.NewPalette(n.Session.Regions()),
	}

	if n.Path == "" {
		out := n.Out
		if out == nil {
			out = os.Stdout
		}
		return svg.Render(out, plan, opts)
	}

	f, err := os.Create(n.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", n.Path, err)
	}
	if err := svg.Render(f, plan, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if n.Log != nil {
		n.Log.Info("wrote svg", "path", n.Path, "columns", len(plan.Columns), "blocks", plan.Blocks())
	}
	return nil
}
