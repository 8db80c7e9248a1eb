package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/annals/pkg/event"
)

// EventOptions
type EventOptions struct {
	Name        string
	Start       int
	End         int
	Region      string
	Description string
	Parent      int
}

// AddEventArgs registers the event field flags. Start and end are required
// when required is true.
func AddEventArgs(cmd *cobra.Command, o *EventOptions, required bool) {
	cmd.Flags().IntVar(&o.Start, "start", 0,
		`First year, negative for B.C., example: --start=-264.`)
	cmd.Flags().IntVar(&o.End, "end", 0,
		`Last year, negative for B.C., example: --end=-146.`)
	cmd.Flags().StringVar(&o.Region, "region", "",
		`Region or subregion the event is filed under.`)
	cmd.Flags().StringVar(&o.Description, "description", "",
		`Free text shown with the event.`)
	if required {
		_ = cmd.MarkFlagRequired("start")
		_ = cmd.MarkFlagRequired("end")
	}
}

func AddParentArg(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().IntVar(&o.Parent, "parent", 0,
		`Id of an existing event to nest the new one under.`)
}

// ParentID is nil unless --parent was given.
func (o *EventOptions) ParentID(cmd *cobra.Command) *int {
	if !cmd.Flags().Changed("parent") {
		return nil
	}
	return event.IntPtr(o.Parent)
}

func (o *EventOptions) Draft() event.Draft {
	return event.Draft{
		Name:        o.Name,
		Start:       o.Start,
		End:         o.End,
		Region:      o.Region,
		Description: o.Description,
	}
}
