package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/annals/pkg/commands/options"
	"tableflip.dev/annals/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	eo := &options.EventOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an event",
		Example: `
annals edit 2 --end=-146
annals edit 3 --name="Wars of Alexander" --region="West Asia (Orient)"
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

			s := edit.Edit{
				Session: ws.Session,
				ID:      id,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				s.Name = &eo.Name
			}
			if flags.Changed("start") {
				s.Start = &eo.Start
			}
			if flags.Changed("end") {
				s.End = &eo.End
			}
			if flags.Changed("region") {
				s.Region = &eo.Region
			}
			if flags.Changed("description") {
				s.Description = &eo.Description
			}
			err = s.Do(commandContext(cmd))
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&eo.Name, "name", "", "New event name.")
	options.AddEventArgs(cmd, eo, false)
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("region", regionCompletions)
	topLevel.AddCommand(cmd)
}
