package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/store"
	"tableflip.dev/annals/pkg/timeline"
)

type Info struct {
	Config  store.Config
	Session *app.Session
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("ANNALS_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "ANNALS_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "ANNALS_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "log.level:", n.Config.LogLevel())
	_, _ = fmt.Fprintln(out, "layout.interval_policy:", n.Config.IntervalPolicy())
	_, _ = fmt.Fprintln(out, "delete.cascade:", n.Config.Cascade())
	_, _ = fmt.Fprintln(out, "zoom.default:", n.Config.ZoomDefault())

	if n.Session == nil {
		return fmt.Errorf("failed to open the dataset")
	}

	b := n.Session.Bounds()
	_, _ = fmt.Fprintf(out, "\nevents: %d\nregions: %d\nbounds: %s\n",
		len(n.Session.Events()),
		len(n.Session.Regions()),
		timeline.FormatSpan(b.StartYear, b.EndYear))
	return nil
}
