package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/annals/pkg/commands/options"
	"tableflip.dev/annals/pkg/printers"
	"tableflip.dev/annals/pkg/render/svg"
	"tableflip.dev/annals/pkg/runner/layout"
	"tableflip.dev/annals/pkg/runner/render"
)

func addLayout(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show lane assignments and block geometry",
		Example: `
annals layout
annals layout --zoom=50 --regions="Western Europe,China" --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			output.Out = cmd.OutOrStdout()
			ws, err := loadWorkspace(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			s := layout.Layout{
				Session: ws.Session,
				View:    vo.View(),
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(commandContext(cmd))
			return output.HandleError(err)
		},
	}

	options.AddViewArgs(cmd, vo)
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("regions", regionCompletions)
	topLevel.AddCommand(cmd)
}

func addChart(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	width := printers.DefaultChartColumnWidth

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Draw the timeline as text",
		Example: `
annals chart
annals chart --zoom=20 --regions=China --width=40
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ws, err := loadWorkspace(cmd)
			if err != nil {
				return err
			}
			s := layout.Layout{
				Session:     ws.Session,
				View:        vo.View(),
				Chart:       true,
				ColumnWidth: width,
				Out:         cmd.OutOrStdout(),
			}
			return s.Do(commandContext(cmd))
		},
	}

	options.AddViewArgs(cmd, vo)
	cmd.Flags().IntVar(&width, "width", width, "Width of one region column in cells.")
	_ = cmd.RegisterFlagCompletionFunc("regions", regionCompletions)
	topLevel.AddCommand(cmd)
}

func addRender(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	var (
		out   string
		width float64
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the timeline to SVG",
		Example: `
annals render --out=timeline.svg
annals render --zoom=50 --regions="Western Europe,Eastern Europe" > europe.svg
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if out == "" && cmd.OutOrStdout() == os.Stdout && options.IsTerminal(os.Stdout) {
				return errors.New("refusing to write SVG to a terminal, use --out or redirect stdout")
			}
			ws, err := loadWorkspace(cmd)
			if err != nil {
				return err
			}
			s := render.Render{
				Session:     ws.Session,
				View:        vo.View(),
				Path:        out,
				ColumnWidth: width,
				Out:         cmd.OutOrStdout(),
				Log:         ws.Log,
			}
			return s.Do(commandContext(cmd))
		},
	}

	options.AddViewArgs(cmd, vo)
	cmd.Flags().StringVarP(&out, "out", "o", "", "SVG file to write. Defaults to stdout.")
	cmd.Flags().Float64Var(&width, "column-width", svg.DefaultColumnWidth, "Width of one region column in pixels.")
	_ = cmd.RegisterFlagCompletionFunc("regions", regionCompletions)
	topLevel.AddCommand(cmd)
}
