package rootcmd

import (
	"fmt"
	"regexp"
	"strings"
)

// implicitArgs is the parsed form of a root-level invocation that did not
// name a subcommand: either an implicit add (`see -d "..." -c cmd ...`)
// or a bare alias/id run (`see deploy prod`).
type implicitArgs struct {
	Description string
	Tags        []string
	Alias       string
	Command     string // joined from everything after -c; empty when absent
	SaveOnly    bool
	Verbose     bool
	DryRun      bool
	Help        bool
	DataHome    string

	// Positionals holds non-flag tokens when no -c was given; the first
	// is the run target, the rest are placeholder values.
	Positionals []string
}

// parseImplicit implements the root grammar by hand because -c must
// consume every remaining token verbatim, which cobra's flag parsing
// cannot express.
func parseImplicit(args []string) (*implicitArgs, error) {
	p := &implicitArgs{}

	i := 0
	for i < len(args) {
		arg := args[i]
		switch arg {
		case "-h", "--help":
			p.Help = true
			i++

		case "-d", "--desc", "--description":
			v, n, err := flagValue(args, i)
			if err != nil {
				return nil, err
			}
			p.Description = v
			i = n

		case "-t", "--tag", "--tags":
			v, n, err := flagValue(args, i)
			if err != nil {
				return nil, err
			}
			for _, t := range strings.Split(v, ",") {
				if t = strings.TrimSpace(t); t != "" {
					p.Tags = append(p.Tags, t)
				}
			}
			i = n

		case "-a", "--alias":
			v, n, err := flagValue(args, i)
			if err != nil {
				return nil, err
			}
			p.Alias = v
			i = n

		case "--see-home":
			v, n, err := flagValue(args, i)
			if err != nil {
				return nil, err
			}
			p.DataHome = v
			i = n

		case "-s", "--save", "--save-only":
			p.SaveOnly = true
			i++

		case "-v", "--verbose":
			p.Verbose = true
			i++

		case "--dry-run":
			p.DryRun = true
			i++

		case "-c", "--command":
			// Everything after -c is the command, flags included.
			rest := args[i+1:]
			if len(rest) == 0 {
				return nil, fmt.Errorf("flag %s needs a command", arg)
			}
			p.Command = shJoin(rest)
			return p, nil

		default:
			if strings.HasPrefix(arg, "-") && len(p.Positionals) == 0 {
				return nil, fmt.Errorf("unknown flag: %s", arg)
			}
			// After the run target, tokens pass through as placeholder
			// values even when they look like flags.
			p.Positionals = append(p.Positionals, arg)
			i++
		}
	}
	return p, nil
}

func flagValue(args []string, i int) (string, int, error) {
	if i+1 >= len(args) {
		return "", 0, fmt.Errorf("flag %s needs a value", args[i])
	}
	return args[i+1], i + 2, nil
}

// shSafe matches tokens that need no quoting in a POSIX shell.
var shSafe = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

// shJoin joins tokens into a single shell command line, single-quoting
// any token the shell would otherwise reinterpret.
func shJoin(args []string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		if arg != "" && shSafe.MatchString(arg) {
			parts[i] = arg
		} else {
			parts[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
		}
	}
	return strings.Join(parts, " ")
}
