package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/annals/pkg/commands/options"
	"tableflip.dev/annals/pkg/prompt"
	"tableflip.dev/annals/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add something",
		Example: `
annals add event Punic Wars --start=-264 --end=-146 --region="Western Europe"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEvent(cmd)

	topLevel.AddCommand(cmd)
}

func addEvent(topLevel *cobra.Command) {
	eo := &options.EventOptions{}
	ia := &options.InteractiveOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "event <name...>",
		Short: "Add an event",
		Example: `
annals add event Roman Republic --start=-509 --end=-27 --region="Western Europe"
annals add event First Punic War --start=-264 --end=-241 --parent=2
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires an event name")
			}
			eo.Name = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			output.Out = cmd.OutOrStdout()
			ws, err := loadWorkspace(cmd)
			if err != nil {
				return output.HandleError(err)
			}

			s := add.Add{
				Session: ws.Session,
				Draft:   eo.Draft(),
				Parent:  eo.ParentID(cmd),
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			if ia.Prompt() {
				s.Prompter = &prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			}
			err = s.Do(commandContext(cmd))
			return output.HandleError(err)
		},
	}

	options.AddEventArgs(cmd, eo, true)
	options.AddParentArg(cmd, eo)
	options.InteractiveArgs(cmd, ia)
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("region", regionCompletions)
	topLevel.AddCommand(cmd)
}
