package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/annals/pkg/commands/options"
	"tableflip.dev/annals/pkg/prompt"
	"tableflip.dev/annals/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	cascade := &options.CascadeValue{}
	ia := &options.InteractiveOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an event and the events nested under it",
		Example: `
annals delete 1
annals delete 1 --cascade=children
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			output.Out = cmd.OutOrStdout()
			id, err := parseID(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			ws, err := loadWorkspace(cmd)
			if err != nil {
				return output.HandleError(err)
			}

			s := remove.Remove{
				Session: ws.Session,
				ID:      id,
				Cascade: cascade.Cascade,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			if ia.Prompt() && !output.JSON {
				p := prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
				s.Confirm = p.Confirm
			}
			err = s.Do(commandContext(cmd))
			return output.HandleError(err)
		},
	}

	options.AddCascadeArg(cmd, cascade)
	options.InteractiveArgs(cmd, ia)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
