package edit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/event"
	"tableflip.dev/annals/pkg/printers"
)

// Edit changes the fields that are set and keeps the rest.
type Edit struct {
	Session *app.Session
	ID      int

	Name        *string
	Start       *int
	End         *int
	Region      *string
	Description *string

	JSON bool
	Out  io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not edit, no session")
	}
	current, ok := n.Session.Event(n.ID)
	if !ok {
		return fmt.Errorf("%w: %d", event.ErrEventNotFound, n.ID)
	}

	draft := event.DraftOf(current)
	if n.Name != nil {
		draft.Name = *n.Name
	}
	if n.Start != nil {
		draft.Start = *n.Start
	}
	if n.End != nil {
		draft.End = *n.End
	}
	if n.Region != nil {
		draft.Region = *n.Region
	}
	if n.Description != nil {
		draft.Description = *n.Description
	}

	e, err := n.Session.UpdateEvent(ctx, n.ID, draft)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out, ShowID: true}
	if n.JSON {
		return pp.JSON(e)
	}
	pp.Events([]event.Event{e})
	return nil
}
