// Package listcmd implements the `see list` command.
package listcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/see/cmd/see/shared"
	"github.com/go-ports/see/internal/dispatch"
	"github.com/go-ports/see/internal/registry"
)

// Command implements `see list`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	tags  []string
	limit int
	sort  string
}

// New creates the list command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "list",
		Short: "List saved commands",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.StringSliceVarP(&c.tags, "tag", "t", nil, "Only show commands carrying one of these tags")
	f.IntVarP(&c.limit, "limit", "n", 0, "Show at most this many commands")
	f.StringVarP(&c.sort, "sort", "s", registry.SortCreated, "Sort order: created, recent, used")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	d, err := dispatch.New(c.ctx.DataHome, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return d.List(registry.ListOptions{Tags: c.tags, Limit: c.limit, Sort: c.sort})
}
