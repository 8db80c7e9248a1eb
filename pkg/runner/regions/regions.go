// Package regions lists and edits the region taxonomy.
package regions

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/event"
	"tableflip.dev/annals/pkg/printers"
)

// Op selects what Regions does.
type Op int

const (
	List Op = iota
	AddRegion
	AddSubregion
	DeleteRegion
	DeleteSubregion
)

type Regions struct {
	Session *app.Session
	Op      Op

	RegionID    string
	SubregionID string
	Name        string

	JSON bool
	Out  io.Writer
}

func (n *Regions) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not edit regions, no session")
	}
	pp := printers.PrettyPrint{Out: n.Out}

	var (
		changed any
		verb    string
		err     error
	)
	switch n.Op {
	case List:
	case AddRegion:
		verb = "Added"
		changed, err = n.Session.AddRegion(ctx, n.Name)
	case AddSubregion:
		verb = "Added"
		changed, err = n.Session.AddSubregion(ctx, n.RegionID, n.Name)
	case DeleteRegion:
		verb = "Deleted"
		changed, err = n.Session.DeleteRegion(ctx, n.RegionID)
	case DeleteSubregion:
		verb = "Deleted"
		changed, err = n.Session.DeleteSubregion(ctx, n.RegionID, n.SubregionID)
	default:
		return fmt.Errorf("unknown regions op %d", n.Op)
	}
	if err != nil {
		return err
	}

	if n.JSON {
		if changed != nil {
			return pp.JSON(changed)
		}
		return pp.JSON(n.Session.Regions())
	}
	if verb != "" {
		pp.Printf("%s %s\n\n", verb, describe(changed))
	}
	pp.Title("Regions")
	pp.Regions(n.Session.Regions())
	return nil
}

func describe(v any) string {
	switch x := v.(type) {
	case event.Region:
		return fmt.Sprintf("region %s (%s)", x.Name, x.ID)
	case event.Subregion:
		return fmt.Sprintf("subregion %s (%s)", x.Name, x.ID)
	default:
		return fmt.Sprint(v)
	}
}
