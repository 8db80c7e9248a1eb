package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/event"
	"tableflip.dev/annals/pkg/printers"
	"tableflip.dev/annals/pkg/prompt"
)

// Add creates one event.
type Add struct {
	Session *app.Session
	Draft   event.Draft
	Parent  *int

	// Prompter, when set, is asked for the region if Draft has none.
	Prompter *prompt.Prompter

	JSON bool
	Out  io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not add, no session")
	}
	if n.Draft.Region == "" && n.Prompter != nil {
		region, err := n.Prompter.Region(n.Session.Regions())
		if err != nil {
			return err
		}
		n.Draft.Region = region
	}

	e, err := n.Session.AddEvent(ctx, n.Draft, n.Parent)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: n.Out, ShowID: true}
	if n.JSON {
		return pp.JSON(e)
	}
	pp.Title(e.Region)
	pp.Events([]event.Event{e})
	return nil
}
