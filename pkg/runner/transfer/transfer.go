// Package transfer moves the dataset to and from YAML or JSON files.
package transfer

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/event"
	"tableflip.dev/annals/pkg/printers"
)

// Export writes the whole dataset to Path.
type Export struct {
	Session *app.Session
	Path    string
	Out     io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not export, no session")
	}
	d := n.Session.Dataset()
	if err := event.WriteFile(n.Path, d); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Printf("exported %d events and %d regions to %s\n", len(d.Events), len(d.Regions), n.Path)
	return nil
}

// Import replaces the whole dataset with the contents of Path.
type Import struct {
	Session *app.Session
	Path    string
	Out     io.Writer
}

func (n *Import) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not import, no session")
	}
	d, err := event.ReadFile(n.Path)
	if err != nil {
		return err
	}
	if err := n.Session.Import(ctx, d); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Printf("imported %d events and %d regions from %s\n", len(d.Events), len(d.Regions), n.Path)
	return nil
}
