// Package execx runs saved commands as subprocesses and handles the
// {{param}} placeholders embedded in command text.
package execx

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

var paramRe = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Params returns the placeholder names in command, in order of first
// appearance, deduplicated.
func Params(command string) []string {
	matches := paramRe.FindAllStringSubmatch(command, -1)
	seen := make(map[string]bool)
	var names []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Substitute replaces {{name}} placeholders with the given values.
// Placeholders without a value are left as-is.
func Substitute(command string, values map[string]string) string {
	out := command
	for name, value := range values {
		out = strings.ReplaceAll(out, "{{"+name+"}}", value)
	}
	return out
}

// SubstitutePositional fills placeholders with args in order of
// placeholder appearance. Extra args are ignored; missing ones keep
// their placeholder.
func SubstitutePositional(command string, args []string) string {
	values := make(map[string]string)
	for i, name := range Params(command) {
		if i < len(args) {
			values[name] = args[i]
		}
	}
	return Substitute(command, values)
}

// PromptValues asks for one value per placeholder, reading lines from in
// and writing prompts to out. A read failure (EOF, interrupt) cancels the
// whole prompt and returns nil.
func PromptValues(params []string, in io.Reader, out io.Writer) map[string]string {
	scanner := bufio.NewScanner(in)
	values := make(map[string]string, len(params))
	for _, name := range params {
		fmt.Fprintf(out, "  %s: ", name)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return nil
		}
		values[name] = scanner.Text()
	}
	return values
}

// Run executes command with `sh -c`, wiring the child's stdout and stderr
// to the given writers and inheriting stdin. The child's exit code is
// returned; a non-zero exit is not an error. Spawn failures are.
func Run(ctx context.Context, command string, stdout, stderr io.Writer) (int, error) {
	c := exec.CommandContext(ctx, "sh", "-c", command)
	c.Stdin = os.Stdin
	c.Stdout = stdout
	c.Stderr = stderr

	err := c.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 1, fmt.Errorf("execx.Run: %w", err)
	}
	return 0, nil
}
