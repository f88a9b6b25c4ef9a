// Package rootcmd wires the root cobra.Command for the see CLI binary.
//
// The root command parses its own flags (DisableFlagParsing) so that two
// grammars cobra cannot express keep working: the implicit add, where -c
// swallows every remaining token as command text, and the bare run, where
// the first positional is a saved command's alias or id. Named
// subcommands dispatch through cobra as usual.
package rootcmd

import (
	"github.com/spf13/cobra"

	aliascmd "github.com/go-ports/see/cmd/see/alias"
	deletecmd "github.com/go-ports/see/cmd/see/delete"
	editcmd "github.com/go-ports/see/cmd/see/edit"
	importcmd "github.com/go-ports/see/cmd/see/import"
	installcmd "github.com/go-ports/see/cmd/see/install"
	interactivecmd "github.com/go-ports/see/cmd/see/interactive"
	listcmd "github.com/go-ports/see/cmd/see/list"
	mcpcmd "github.com/go-ports/see/cmd/see/mcp"
	runcmd "github.com/go-ports/see/cmd/see/run"
	searchcmd "github.com/go-ports/see/cmd/see/search"
	"github.com/go-ports/see/cmd/see/shared"
	showcmd "github.com/go-ports/see/cmd/see/show"
	statscmd "github.com/go-ports/see/cmd/see/stats"
	tagscmd "github.com/go-ports/see/cmd/see/tags"
	"github.com/go-ports/see/internal/buildinfo"
	"github.com/go-ports/see/internal/dispatch"
	"github.com/go-ports/see/internal/registry"
)

// New creates and returns the root cobra.Command for the see CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:                "see",
		Short:              "see: save and re-run shell commands",
		Version:            buildinfo.Version,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(ctx, cmd, args)
		},
	}

	// Declared for help output; values are filled by parseImplicit.
	f := root.Flags()
	f.StringP("description", "d", "", "Description for the command being saved")
	f.StringP("tags", "t", "", "Comma-separated tags for the command being saved")
	f.StringP("alias", "a", "", "Alias for the command being saved")
	f.StringP("command", "c", "", "The command to save; consumes all remaining arguments")
	f.BoolP("save", "s", false, "Save without executing")
	f.BoolP("verbose", "v", false, "Execute directly instead of handing the command to the shell wrapper")
	f.Bool("dry-run", false, "Resolve and print the command without executing it")

	root.PersistentFlags().StringVar(
		&ctx.DataHome, "see-home", "",
		"Override data directory (default: $SEE_HOME, then ~/.config/see)",
	)

	root.AddCommand(
		runcmd.New(ctx).Cmd(),
		listcmd.New(ctx).Cmd(),
		searchcmd.New(ctx).Cmd(),
		showcmd.New(ctx).Cmd(),
		deletecmd.New(ctx).Cmd(),
		editcmd.New(ctx).Cmd(),
		aliascmd.New(ctx).Cmd(),
		statscmd.New(ctx).Cmd(),
		tagscmd.New(ctx).Cmd(),
		importcmd.New(ctx).Cmd(),
		interactivecmd.New(ctx).Cmd(),
		installcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
	)

	return root
}

func runRoot(ctx *shared.Context, cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	// DisableFlagParsing bypasses cobra's version handling.
	if args[0] == "--version" {
		cmd.Printf("see version %s\n", buildinfo.Version)
		return nil
	}

	p, err := parseImplicit(args)
	if err != nil {
		return err
	}
	if p.Help {
		return cmd.Help()
	}
	if p.DataHome != "" {
		ctx.DataHome = p.DataHome
	}

	d, err := dispatch.New(ctx.DataHome, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if p.Command != "" {
		return d.Add(cmd.Context(), dispatch.AddRequest{
			Description: p.Description,
			Tags:        p.Tags,
			Alias:       p.Alias,
			Command:     p.Command,
			SaveOnly:    p.SaveOnly,
			ShellMode:   !p.Verbose,
		})
	}

	if len(p.Positionals) == 0 {
		return &registry.ValidationError{Msg: "nothing to do: pass -c to save a command, or an alias/id to run one"}
	}
	return d.Run(cmd.Context(), p.Positionals[0], p.Positionals[1:], !p.Verbose, p.DryRun)
}
