package get

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/event"
	"tableflip.dev/annals/pkg/printers"
)

// Get lists events, optionally those of one region.
type Get struct {
	Session *app.Session
	// Region, when set, keeps events filed under it. A main region also
	// matches its subregions.
	Region string
	ShowID bool
	JSON   bool
	Out    io.Writer
}

func (n *Get) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not get, no session")
	}
	events := n.filtered(n.Session.Events())

	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}
	if n.JSON {
		return pp.JSON(events)
	}
	title := n.Region
	if title == "" {
		title = "All regions"
	}
	pp.TitleWithCount(title, len(events), "event")
	pp.Events(events)
	return nil
}

func (n *Get) filtered(all []event.Event) []event.Event {
	if n.Region == "" {
		return all
	}
	names := map[string]bool{n.Region: true}
	for _, r := range n.Session.Regions() {
		if r.Name == n.Region {
			for _, s := range r.Subregions {
				names[s.Name] = true
			}
		}
	}
	out := make([]event.Event, 0, len(all))
	for _, e := range all {
		if names[e.Region] {
			out = append(out, e)
		}
	}
	return out
}
