// Package deletecmd implements the `see delete` command.
package deletecmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/go-ports/see/cmd/see/shared"
	"github.com/go-ports/see/internal/dispatch"
	"github.com/go-ports/see/internal/registry"
)

// Command implements `see delete`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the delete command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete saved commands by id",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return &registry.ValidationError{Msg: fmt.Sprintf("invalid id %q", arg)}
		}
		ids = append(ids, id)
	}

	d, err := dispatch.New(c.ctx.DataHome, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return d.Delete(ids)
}
