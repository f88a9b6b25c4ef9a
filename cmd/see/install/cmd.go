// Package installcmd implements the `see install` command.
package installcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-ports/see/cmd/see/shared"
	"github.com/go-ports/see/internal/installer"
)

// Command implements `see install`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	rcFile string
}

// New creates the install command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "install [bash|zsh|fish]",
		Short: "Install the shell wrapper function",
		Long: `Install appends a wrapper function to your shell's startup file.
The wrapper lets saved commands affect the calling shell: cd, exports,
and sourced scripts work because the shell itself evaluates them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.run,
	}

	c.cmd.Flags().StringVar(&c.rcFile, "rc-file", "", "Write to this startup file instead of the default")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	var shell string
	if len(args) > 0 {
		shell = args[0]
	} else {
		detected, ok := installer.DetectShell()
		if !ok {
			return fmt.Errorf("could not detect shell from $SHELL; pass bash, zsh, or fish explicitly")
		}
		shell = detected
	}

	rcPath := c.rcFile
	if rcPath == "" {
		var err error
		if rcPath, err = installer.RCFile(shell); err != nil {
			return err
		}
	}

	binPath, err := os.Executable()
	if err != nil {
		binPath = "see"
	}

	res, err := installer.Install(shell, binPath, rcPath)
	if err != nil {
		// Writing the rc file failed; hand the wrapper to the user so they
		// can paste it in themselves.
		if wrapper, werr := installer.Wrapper(shell, binPath); werr == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not update %s. Add this to your shell startup file manually:\n\n%s\n", rcPath, wrapper)
		}
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), res.Message)
	return nil
}
