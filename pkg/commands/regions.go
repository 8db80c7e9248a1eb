package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/annals/pkg/commands/options"
	"tableflip.dev/annals/pkg/runner/regions"
)

func addRegions(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List the region columns",
		Example: `
annals regions
annals regions add Oceania
annals regions add-sub r1 Iberia
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegions(cmd, output, regions.Regions{Op: regions.List})
		},
	}
	options.AddOutputArg(cmd, output)

	addRegionOp(cmd, "add <name>", "Append a region column", 1, func(args []string) regions.Regions {
		return regions.Regions{Op: regions.AddRegion, Name: args[0]}
	})
	addRegionOp(cmd, "add-sub <region-id> <name>", "Append a subregion column under a region", 2, func(args []string) regions.Regions {
		return regions.Regions{Op: regions.AddSubregion, RegionID: args[0], Name: args[1]}
	})
	addRegionOp(cmd, "delete <region-id>", "Delete a region and its subregions", 1, func(args []string) regions.Regions {
		return regions.Regions{Op: regions.DeleteRegion, RegionID: args[0]}
	})
	addRegionOp(cmd, "delete-sub <region-id> <sub-id>", "Delete a subregion", 2, func(args []string) regions.Regions {
		return regions.Regions{Op: regions.DeleteSubregion, RegionID: args[0], SubregionID: args[1]}
	})

	topLevel.AddCommand(cmd)
}

func addRegionOp(parent *cobra.Command, use, short string, nargs int, build func(args []string) regions.Regions) {
	output := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegions(cmd, output, build(args))
		},
	}
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func runRegions(cmd *cobra.Command, output *options.OutputOptions, s regions.Regions) error {
	cmd.SilenceUsage = true
	output.Out = cmd.OutOrStdout()
	ws, err := loadWorkspace(cmd)
	if err != nil {
		return output.HandleError(err)
	}
	s.Session = ws.Session
	s.JSON = output.JSON
	s.Out = cmd.OutOrStdout()
	err = s.Do(commandContext(cmd))
	return output.HandleError(err)
}
