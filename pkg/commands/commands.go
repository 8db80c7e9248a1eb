package commands

import (
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "annals",
		Short: base.Wrap80("Lay out historical events as lanes in parallel region columns."),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if termenv.EnvNoColor() {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addGet(topLevel)
	addRegions(topLevel)
	addLayout(topLevel)
	addChart(topLevel)
	addRender(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
