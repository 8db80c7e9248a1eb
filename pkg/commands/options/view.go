package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/annals/pkg/app"
)

// ViewOptions pick the zoom level and the visible regions.
type ViewOptions struct {
	Zoom    int
	Regions []string
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().IntVar(&o.Zoom, "zoom", 0,
		`Years per row: one of 500, 200, 100, 50, 20 or 10. Defaults to zoom.default.`)
	cmd.Flags().StringSliceVar(&o.Regions, "regions", nil,
		`Comma separated region names to show. Defaults to all regions.`)
}

func (o *ViewOptions) View() app.View {
	return app.View{YearsPerRow: o.Zoom, Regions: o.Regions}
}
