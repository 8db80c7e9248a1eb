// Package remove deletes events.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/event"
	"tableflip.dev/annals/pkg/printers"
)

// Remove deletes an event and, per Cascade, the events below it.
type Remove struct {
	Session *app.Session
	ID      int
	// Cascade empty means the configured default.
	Cascade event.Cascade

	// Confirm, when set, is asked before anything is deleted.
	Confirm func(label string) (bool, error)

	JSON bool
	Out  io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not delete, no session")
	}
	e, ok := n.Session.Event(n.ID)
	if !ok {
		return fmt.Errorf("%w: %d", event.ErrEventNotFound, n.ID)
	}
	if n.Confirm != nil {
		yes, err := n.Confirm(fmt.Sprintf("Delete %q and its sub-events", e.Name))
		if err != nil {
			return err
		}
		if !yes {
			return nil
		}
	}

	removed, err := n.Session.DeleteEvent(ctx, n.ID, n.Cascade)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out, ShowID: true}
	if n.JSON {
		return pp.JSON(map[string]any{"removed": removed})
	}
	pp.TitleWithCount("Deleted", len(removed), "event")
	pp.Events(removed)
	return nil
}
