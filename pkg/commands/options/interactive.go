package options

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// InteractiveOptions
type InteractiveOptions struct {
	NoPrompt bool
}

func InteractiveArgs(cmd *cobra.Command, o *InteractiveOptions) {
	cmd.Flags().BoolVar(&o.NoPrompt, "no-prompt", false,
		`Never ask for missing input, fail instead.`)
}

// Prompt reports whether missing input may be asked for on the terminal.
func (o *InteractiveOptions) Prompt() bool {
	return !o.NoPrompt && IsTerminal(os.Stdin)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
