// Package editcmd implements the `see edit` command.
package editcmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/go-ports/see/cmd/see/shared"
	"github.com/go-ports/see/internal/dispatch"
	"github.com/go-ports/see/internal/registry"
)

// Command implements `see edit`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	description string
	tags        []string
	alias       string
}

// New creates the edit command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a saved command's description, tags, or alias",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.StringVarP(&c.description, "description", "d", "", "New description")
	f.StringSliceVarP(&c.tags, "tag", "t", nil, "New tags (replaces the existing set)")
	f.StringVarP(&c.alias, "alias", "a", "", "New alias")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return &registry.ValidationError{Msg: fmt.Sprintf("invalid id %q", args[0])}
	}

	// Only flags the user actually set touch the record.
	var in registry.UpdateInput
	if cmd.Flags().Changed("description") {
		in.Description = &c.description
	}
	if cmd.Flags().Changed("tag") {
		in.Tags = c.tags
	}
	if cmd.Flags().Changed("alias") {
		in.Alias = &c.alias
	}
	if in.Description == nil && in.Tags == nil && in.Alias == nil {
		return &registry.ValidationError{Msg: "nothing to edit: pass -d, -t, or -a"}
	}

	d, err := dispatch.New(c.ctx.DataHome, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return d.Edit(id, in)
}
