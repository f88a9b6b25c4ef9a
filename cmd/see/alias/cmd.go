// Package aliascmd implements the `see alias` command.
package aliascmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/go-ports/see/cmd/see/shared"
	"github.com/go-ports/see/internal/dispatch"
	"github.com/go-ports/see/internal/registry"
)

// Command implements `see alias`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	alias string
}

// New creates the alias command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "alias <id>",
		Short: "Assign an alias to a saved command",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}

	c.cmd.Flags().StringVarP(&c.alias, "alias", "a", "", "The alias to assign (required)")
	_ = c.cmd.MarkFlagRequired("alias")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return &registry.ValidationError{Msg: fmt.Sprintf("invalid id %q", args[0])}
	}

	d, err := dispatch.New(c.ctx.DataHome, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return d.SetAlias(id, c.alias)
}
