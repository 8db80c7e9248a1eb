package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/annals/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "export <file.{yaml,json}>",
		Short: "Write every event and region to a file",
		Example: `
annals export backup.yaml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ws, err := loadWorkspace(cmd)
			if err != nil {
				return err
			}
			s := transfer.Export{
				Session: ws.Session,
				Path:    args[0],
				Out:     cmd.OutOrStdout(),
			}
			return s.Do(commandContext(cmd))
		},
	}

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file.{yaml,json}>",
		Short: "Replace every event and region with the contents of a file",
		Example: `
annals import backup.yaml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ws, err := loadWorkspace(cmd)
			if err != nil {
				return err
			}
			s := transfer.Import{
				Session: ws.Session,
				Path:    args[0],
				Out:     cmd.OutOrStdout(),
			}
			return s.Do(commandContext(cmd))
		},
	}

	topLevel.AddCommand(cmd)
}
