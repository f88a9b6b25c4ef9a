// Package history reads shell history files for the import subcommand.
package history

import (
	"os"
	"path/filepath"
	"strings"
)

// trivial commands are never worth importing.
var trivial = map[string]bool{
	"ls": true, "ll": true, "la": true, "l": true,
	"cd": true, "cd ..": true, "cd ~": true, "cd -": true,
	"pwd": true, "clear": true, "cls": true,
	"exit": true, "logout": true,
	"history": true, "h": true,
	"git status": true, "gs": true, "gst": true,
	"git diff": true, "gd": true,
	"git log": true, "gl": true,
	"cat": true, "less": true, "more": true,
	"vim": true, "vi": true, "nano": true, "emacs": true,
	"top": true, "htop": true,
	"man": true, "help": true,
	"echo": true, "printf": true,
	"whoami": true, "id": true,
	"date": true, "cal": true,
}

// DetectFile returns the current shell's history file, preferring the
// shell named in $SHELL and falling back to common locations.
func DetectFile() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	shell := os.Getenv("SHELL")

	candidates := []string{".zsh_history", ".bash_history", ".history"}
	if strings.Contains(shell, "bash") {
		candidates = []string{".bash_history", ".zsh_history", ".history"}
	}

	for _, name := range candidates {
		path := filepath.Join(home, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Read returns up to n commands from the end of the history file at path,
// newest first, deduplicated. Zsh extended history entries
// (": <ts>:0;<command>") are unwrapped.
func Read(path string, n int) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	lines := strings.Split(string(data), "\n")
	// Scan extra lines to compensate for blanks and duplicates.
	if over := n * 2; len(lines) > over {
		lines = lines[len(lines)-over:]
	}

	seen := make(map[string]bool)
	var commands []string
	for i := len(lines) - 1; i >= 0 && len(commands) < n; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if _, cmd, ok := strings.Cut(line, ";"); ok {
				line = cmd
			}
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		commands = append(commands, line)
	}
	return commands
}

// FilterTrivial drops short commands, known trivial commands, and bare
// directory changes.
func FilterTrivial(commands []string) []string {
	const minLength = 3
	var out []string
	for _, cmd := range commands {
		if len(cmd) < minLength {
			continue
		}
		lower := strings.ToLower(cmd)
		base, _, _ := strings.Cut(lower, " ")
		if trivial[lower] || trivial[base] {
			continue
		}
		if strings.HasPrefix(lower, "cd ") && len(cmd) < 20 {
			continue
		}
		out = append(out, cmd)
	}
	return out
}
