// Package searchcmd implements the `see search` command.
package searchcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/see/cmd/see/shared"
	"github.com/go-ports/see/internal/dispatch"
	"github.com/go-ports/see/internal/registry"
)

// Command implements `see search`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	tags []string
}

// New creates the search command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "search [keyword]",
		Short: "Search saved commands by keyword and tags",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.run,
	}

	c.cmd.Flags().StringSliceVarP(&c.tags, "tag", "t", nil, "Only match commands carrying one of these tags")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	keyword := ""
	if len(args) > 0 {
		keyword = args[0]
	}
	if keyword == "" && len(c.tags) == 0 {
		return &registry.ValidationError{Msg: "search needs a keyword or a --tag filter"}
	}

	d, err := dispatch.New(c.ctx.DataHome, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return d.Search(keyword, c.tags)
}
