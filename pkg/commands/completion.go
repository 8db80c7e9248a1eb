package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/annals/pkg/event"
	"tableflip.dev/annals/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(annals completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(annals completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(cmd.OutOrStdout())
		},
	}

	topLevel.AddCommand(cmd)
}

// regionCompletions offers every region and subregion name from the store.
func regionCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	regions, err := p.Regions()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	if regions == nil {
		regions = event.Defaults().Regions
	}
	return event.Names(regions), cobra.ShellCompDirectiveNoFileComp
}
