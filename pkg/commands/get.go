package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/annals/pkg/commands/options"
	"tableflip.dev/annals/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	var (
		region string
		showID bool
	)
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "List events",
		Example: `
annals get
annals get --region="Western Europe" --id
annals get --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			output.Out = cmd.OutOrStdout()
			ws, err := loadWorkspace(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			s := get.Get{
				Session: ws.Session,
				Region:  region,
				ShowID:  showID,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(commandContext(cmd))
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "Only list events filed under this region or its subregions.")
	cmd.Flags().BoolVar(&showID, "id", false, "Show event ids.")
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("region", regionCompletions)
	topLevel.AddCommand(cmd)
}
