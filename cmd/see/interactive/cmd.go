// Package interactivecmd implements the `see interactive` command.
package interactivecmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/see/cmd/see/shared"
	"github.com/go-ports/see/internal/dispatch"
)

// Command implements `see interactive`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the interactive command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Pick and run a saved command interactively",
		Args:    cobra.NoArgs,
		RunE:    c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	d, err := dispatch.New(c.ctx.DataHome, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return d.Interactive(cmd.Context())
}
