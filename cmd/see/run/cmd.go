// Package runcmd implements the `see run` command.
package runcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/see/cmd/see/shared"
	"github.com/go-ports/see/internal/dispatch"
)

// Command implements `see run`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	verbose bool
	dryRun  bool
}

// New creates the run command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "run <id|alias> [args...]",
		Short: "Run a saved command by id or alias",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.BoolVarP(&c.verbose, "verbose", "v", false, "Execute directly instead of handing the command to the shell wrapper")
	f.BoolVar(&c.dryRun, "dry-run", false, "Resolve and print the command without executing it")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	d, err := dispatch.New(c.ctx.DataHome, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return d.Run(cmd.Context(), args[0], args[1:], !c.verbose, c.dryRun)
}
