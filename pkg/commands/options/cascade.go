package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/annals/pkg/event"
)

// CascadeValue is a --cascade flag that only accepts known cascades.
type CascadeValue struct {
	Cascade event.Cascade
}

var _ pflag.Value = (*CascadeValue)(nil)

func (c *CascadeValue) String() string { return string(c.Cascade) }

func (c *CascadeValue) Set(s string) error {
	v, err := event.ParseCascade(s)
	if err != nil {
		return err
	}
	c.Cascade = v
	return nil
}

func (c *CascadeValue) Type() string { return "cascade" }

func AddCascadeArg(cmd *cobra.Command, c *CascadeValue) {
	cmd.Flags().Var(c, "cascade",
		`Which sub-events go with a deleted event: children or descendants. Defaults to delete.cascade.`)
	_ = cmd.RegisterFlagCompletionFunc("cascade", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(event.CascadeChildren), string(event.CascadeDescendants)}, cobra.ShellCompDirectiveNoFileComp
	})
}
