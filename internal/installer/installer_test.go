package installer_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/see/internal/installer"
	"github.com/go-ports/see/internal/resolve"
)

func TestDetectShell(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		env    string
		want   string
		wantOK bool
	}{
		{"/bin/bash", "bash", true},
		{"/usr/bin/zsh", "zsh", true},
		{"/usr/local/bin/fish", "fish", true},
		{"/bin/tcsh", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Setenv("SHELL", tt.env)
		got, ok := installer.DetectShell()
		c.Assert(ok, qt.Equals, tt.wantOK, qt.Commentf("SHELL=%q", tt.env))
		c.Assert(got, qt.Equals, tt.want)
	}
}

func TestRCFile(t *testing.T) {
	c := qt.New(t)
	t.Setenv("HOME", "/home/u")

	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "/home/u/.bashrc"},
		{"zsh", "/home/u/.zshrc"},
		{"fish", "/home/u/.config/fish/config.fish"},
	}
	for _, tt := range tests {
		got, err := installer.RCFile(tt.shell)
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, tt.want)
	}

	_, err := installer.RCFile("tcsh")
	c.Assert(err, qt.ErrorMatches, `.*unsupported shell.*`)
}

func TestWrapper(t *testing.T) {
	c := qt.New(t)

	for _, shell := range []string{"bash", "zsh", "fish"} {
		c.Run(shell, func(c *qt.C) {
			wrapper, err := installer.Wrapper(shell, "/usr/local/bin/see")
			c.Assert(err, qt.IsNil)

			// Every informational subcommand must bypass capture-and-eval,
			// or its display output would be executed as shell code.
			for _, name := range resolve.InformationalNames() {
				c.Assert(strings.Contains(wrapper, name), qt.IsTrue, qt.Commentf("missing %q", name))
			}
			c.Assert(wrapper, qt.Contains, "-h")
			c.Assert(wrapper, qt.Contains, "--help")
			c.Assert(wrapper, qt.Contains, "eval")
			c.Assert(wrapper, qt.Contains, "/usr/local/bin/see")
		})
	}

	_, err := installer.Wrapper("tcsh", "see")
	c.Assert(err, qt.ErrorMatches, `.*unsupported shell.*`)
}

func TestInstall(t *testing.T) {
	c := qt.New(t)

	c.Run("appends the wrapper and is idempotent", func(c *qt.C) {
		rcPath := filepath.Join(t.TempDir(), ".bashrc")
		c.Assert(os.WriteFile(rcPath, []byte("export PATH=$PATH\n"), 0o644), qt.IsNil)

		res, err := installer.Install("bash", "see", rcPath)
		c.Assert(err, qt.IsNil)
		c.Assert(res.Status, qt.Equals, "ok")

		data, err := os.ReadFile(rcPath)
		c.Assert(err, qt.IsNil)
		c.Assert(string(data), qt.Contains, "export PATH=$PATH")
		c.Assert(string(data), qt.Contains, "see() {")

		res, err = installer.Install("bash", "see", rcPath)
		c.Assert(err, qt.IsNil)
		c.Assert(res.Status, qt.Equals, "skipped")

		// The wrapper appears exactly once.
		data, err = os.ReadFile(rcPath)
		c.Assert(err, qt.IsNil)
		c.Assert(strings.Count(string(data), "see() {"), qt.Equals, 1)
	})

	c.Run("creates missing rc file and parents", func(c *qt.C) {
		rcPath := filepath.Join(t.TempDir(), ".config", "fish", "config.fish")
		res, err := installer.Install("fish", "see", rcPath)
		c.Assert(err, qt.IsNil)
		c.Assert(res.Status, qt.Equals, "ok")

		data, err := os.ReadFile(rcPath)
		c.Assert(err, qt.IsNil)
		c.Assert(string(data), qt.Contains, "function see")
	})
}
