package history_test

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/see/internal/history"
)

func writeHistory(c *qt.C, lines string) string {
	c.Helper()
	path := filepath.Join(c.TempDir(), "history")
	c.Assert(os.WriteFile(path, []byte(lines), 0o644), qt.IsNil)
	return path
}

func TestRead_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("newest first, deduplicated", func(c *qt.C) {
		path := writeHistory(c, "echo one\necho two\necho one\necho three\n")
		got := history.Read(path, 10)
		c.Assert(got, qt.DeepEquals, []string{"echo three", "echo one", "echo two"})
	})

	c.Run("limit caps the result", func(c *qt.C) {
		path := writeHistory(c, "a1\na2\na3\na4\n")
		got := history.Read(path, 2)
		c.Assert(got, qt.DeepEquals, []string{"a4", "a3"})
	})

	c.Run("zsh extended format unwrapped", func(c *qt.C) {
		path := writeHistory(c, ": 1700000000:0;git push origin main\n: 1700000001:0;make test\n")
		got := history.Read(path, 10)
		c.Assert(got, qt.DeepEquals, []string{"make test", "git push origin main"})
	})

	c.Run("missing file yields nil", func(c *qt.C) {
		c.Assert(history.Read("/nonexistent/history", 10), qt.IsNil)
	})
}

func TestFilterTrivial(t *testing.T) {
	c := qt.New(t)

	got := history.FilterTrivial([]string{
		"ls",
		"cd ..",
		"cd /tmp",
		"git status",
		"kubectl get pods -n prod",
		"vim notes.txt",
		"x",
		"docker compose up -d",
	})
	c.Assert(got, qt.DeepEquals, []string{
		"kubectl get pods -n prod",
		"docker compose up -d",
	})
}

func TestDetectFile(t *testing.T) {
	c := qt.New(t)

	home := t.TempDir()
	t.Setenv("HOME", home)

	c.Run("no history files", func(c *qt.C) {
		_, ok := history.DetectFile()
		c.Assert(ok, qt.IsFalse)
	})

	c.Run("bash shell prefers bash history", func(c *qt.C) {
		c.Assert(os.WriteFile(filepath.Join(home, ".bash_history"), []byte("echo hi\n"), 0o644), qt.IsNil)
		c.Assert(os.WriteFile(filepath.Join(home, ".zsh_history"), []byte("echo hi\n"), 0o644), qt.IsNil)

		t.Setenv("SHELL", "/bin/bash")
		path, ok := history.DetectFile()
		c.Assert(ok, qt.IsTrue)
		c.Assert(filepath.Base(path), qt.Equals, ".bash_history")

		t.Setenv("SHELL", "/usr/bin/zsh")
		path, ok = history.DetectFile()
		c.Assert(ok, qt.IsTrue)
		c.Assert(filepath.Base(path), qt.Equals, ".zsh_history")
	})
}
