// Package installer writes the shell wrapper functions that make effectful
// subcommands act on the caller's shell.
//
// The wrapper captures stdout of effectful calls and evals non-empty
// output; informational calls run untouched. The informational name list
// is embedded from internal/resolve so the wrapper and the binary cannot
// classify a subcommand differently.
package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ports/see/internal/resolve"
)

// marker identifies an installed wrapper inside an rc file.
const marker = "# SEE shell integration"

// Result is the return value from Install.
type Result struct {
	Status  string // "ok" or "skipped"
	Message string
}

// DetectShell derives the shell dialect from $SHELL.
func DetectShell() (string, bool) {
	shell := os.Getenv("SHELL")
	for _, name := range []string{"bash", "zsh", "fish"} {
		if strings.Contains(shell, name) {
			return name, true
		}
	}
	return "", false
}

// RCFile returns the startup file edited for the given shell.
func RCFile(shell string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch shell {
	case "bash":
		return filepath.Join(home, ".bashrc"), nil
	case "zsh":
		return filepath.Join(home, ".zshrc"), nil
	case "fish":
		return filepath.Join(home, ".config", "fish", "config.fish"), nil
	}
	return "", fmt.Errorf("installer: unsupported shell %q", shell)
}

// infoNames returns the wrapper's informational token list: every
// informational subcommand plus the help flags.
func infoNames() string {
	names := append(resolve.InformationalNames(), "-h", "--help")
	return strings.Join(names, " ")
}

// Wrapper returns the shell function for the given dialect, dispatching to
// the binary at binPath.
func Wrapper(shell, binPath string) (string, error) {
	switch shell {
	case "bash", "zsh":
		return fmt.Sprintf(`%s
see() {
    local info_cmds=" %s "
    if [[ $# -eq 0 ]] || [[ "$info_cmds" == *" $1 "* ]]; then
        command %s "$@"
    else
        local cmd_output
        cmd_output=$(command %s "$@")
        if [[ -n "$cmd_output" ]]; then
            eval "$cmd_output"
        fi
    fi
}
`, marker, infoNames(), binPath, binPath), nil
	case "fish":
		return fmt.Sprintf(`%s
function see
    set -l info_cmds %s
    if test (count $argv) -eq 0; or contains -- $argv[1] $info_cmds
        command %s $argv
    else
        set -l cmd_output (command %s $argv)
        if test -n "$cmd_output"
            eval $cmd_output
        end
    end
end
`, marker, infoNames(), binPath, binPath), nil
	}
	return "", fmt.Errorf("installer: unsupported shell %q", shell)
}

// Install appends the wrapper for shell to rcPath. A second install is
// detected via the marker comment and skipped.
func Install(shell, binPath, rcPath string) (Result, error) {
	wrapper, err := Wrapper(shell, binPath)
	if err != nil {
		return Result{}, err
	}

	if data, err := os.ReadFile(rcPath); err == nil {
		if strings.Contains(string(data), marker) {
			return Result{Status: "skipped", Message: fmt.Sprintf("Shell integration already installed in %s", rcPath)}, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(rcPath), 0o755); err != nil {
		return Result{}, fmt.Errorf("installer.Install: %w", err)
	}
	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return Result{}, fmt.Errorf("installer.Install: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString("\n" + wrapper + "\n"); err != nil {
		return Result{}, fmt.Errorf("installer.Install: %w", err)
	}

	return Result{
		Status:  "ok",
		Message: fmt.Sprintf("Added shell integration to %s\nTo activate it now, run:\n  source %s", rcPath, rcPath),
	}, nil
}
