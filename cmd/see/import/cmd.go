// Package importcmd implements the `see import` command.
package importcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/see/cmd/see/shared"
	"github.com/go-ports/see/internal/dispatch"
)

// Command implements `see import`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	fromHistory bool
	file        string
	lines       int
	noFilter    bool
}

// New creates the import command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "import",
		Short: "Import commands from shell history",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.BoolVar(&c.fromHistory, "history", false, "Read from the current shell's history file")
	f.StringVar(&c.file, "file", "", "Read from a specific history file")
	f.IntVarP(&c.lines, "lines", "n", 0, "How many history entries to scan (default from config)")
	f.BoolVar(&c.noFilter, "no-filter", false, "Keep trivial commands like ls and cd")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	d, err := dispatch.New(c.ctx.DataHome, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return d.Import(dispatch.ImportRequest{
		FromHistory: c.fromHistory,
		File:        c.file,
		Lines:       c.lines,
		NoFilter:    c.noFilter,
	})
}
