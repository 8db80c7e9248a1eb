package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/annals/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where the timeline is stored.",
		Example: `
annals info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ws, err := loadWorkspace(cmd)
			if err != nil {
				return err
			}
			s := info.Info{
				Config:  ws.Config,
				Session: ws.Session,
				Out:     cmd.OutOrStdout(),
			}
			return s.Do(commandContext(cmd))
		},
	}

	topLevel.AddCommand(cmd)
}
