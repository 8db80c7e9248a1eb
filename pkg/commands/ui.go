package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/annals/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Browse the timeline in an interactive viewer",
		Example: `
annals ui
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ws, err := loadWorkspace(cmd)
			if err != nil {
				return err
			}
			return teaui.Run(commandContext(cmd), ws.Session, ws.Log)
		},
	}

	topLevel.AddCommand(cmd)
}
