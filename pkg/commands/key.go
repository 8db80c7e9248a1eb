package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/annals/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the region colors and chart symbols",
		Example: `
annals key
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ws, err := loadWorkspace(cmd)
			if err != nil {
				return err
			}
			k := key.Key{Session: ws.Session, Out: cmd.OutOrStdout()}
			return k.Do(commandContext(cmd))
		},
	}

	topLevel.AddCommand(cmd)
}
