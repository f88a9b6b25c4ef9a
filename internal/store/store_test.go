package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/see/internal/store"
)

func TestNew_HappyPath(t *testing.T) {
	c := qt.New(t)
	st := store.New("/tmp/see-home")
	c.Assert(st.Path(), qt.Equals, "/tmp/see-home/commands.json")
}

func TestSaveLoad_HappyPath(t *testing.T) {
	c := qt.New(t)
	st := store.New(t.TempDir())

	used := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	col := store.NewCollection()
	col.Assign(&store.Record{
		Description: "deploy to prod",
		Tags:        []string{"deploy", "prod"},
		Alias:       "deploy",
		Command:     "kubectl apply -f prod.yaml",
		ShellExec:   true,
		UsageCount:  3,
		CreatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		LastUsedAt:  &used,
	})
	col.Assign(&store.Record{
		Command:   "echo hi",
		CreatedAt: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	})

	c.Assert(st.Save(col), qt.IsNil)

	got := st.Load()
	c.Assert(got.LastID, qt.Equals, 2)
	c.Assert(got.Records, qt.HasLen, 2)

	rec := got.Records[1]
	c.Assert(rec.ID, qt.Equals, 1)
	c.Assert(rec.Description, qt.Equals, "deploy to prod")
	c.Assert(rec.Tags, qt.DeepEquals, []string{"deploy", "prod"})
	c.Assert(rec.Alias, qt.Equals, "deploy")
	c.Assert(rec.Command, qt.Equals, "kubectl apply -f prod.yaml")
	c.Assert(rec.ShellExec, qt.IsTrue)
	c.Assert(rec.UsageCount, qt.Equals, 3)
	c.Assert(rec.LastUsedAt, qt.IsNotNil)
	c.Assert(rec.LastUsedAt.Equal(used), qt.IsTrue)
	c.Assert(got.Records[2].LastUsedAt, qt.IsNil)
}

func TestLoad_EdgeCases(t *testing.T) {
	c := qt.New(t)

	c.Run("missing file yields empty collection", func(c *qt.C) {
		st := store.New(t.TempDir())
		col := st.Load()
		c.Assert(col.Records, qt.HasLen, 0)
		c.Assert(col.NextID(), qt.Equals, 1)
	})

	c.Run("corrupt file treated as empty", func(c *qt.C) {
		home := t.TempDir()
		path := filepath.Join(home, "commands.json")
		c.Assert(os.WriteFile(path, []byte("{not json"), 0o644), qt.IsNil)

		col := store.New(home).Load()
		c.Assert(col.Records, qt.HasLen, 0)

		// A save after a corrupt load starts over cleanly.
		col.Assign(&store.Record{Command: "echo hi", CreatedAt: time.Now()})
		c.Assert(store.New(home).Save(col), qt.IsNil)
		c.Assert(store.New(home).Load().Records, qt.HasLen, 1)
	})

	c.Run("bare map without wrapper still loads", func(c *qt.C) {
		home := t.TempDir()
		raw := `{"7": {"description": "x", "command_text": "echo x", "created_at": "2026-01-01T00:00:00Z"}}`
		c.Assert(os.WriteFile(filepath.Join(home, "commands.json"), []byte(raw), 0o644), qt.IsNil)

		col := store.New(home).Load()
		c.Assert(col.Records, qt.HasLen, 1)
		c.Assert(col.Records[7].Command, qt.Equals, "echo x")
		c.Assert(col.NextID(), qt.Equals, 8)
	})

	c.Run("legacy array format still loads", func(c *qt.C) {
		home := t.TempDir()
		raw := `[{"id": 3, "command": "git push", "used_count": 2}]`
		c.Assert(os.WriteFile(filepath.Join(home, "commands.json"), []byte(raw), 0o644), qt.IsNil)

		col := store.New(home).Load()
		c.Assert(col.Records, qt.HasLen, 1)
		c.Assert(col.Records[3].Command, qt.Equals, "git push")
		c.Assert(col.Records[3].UsageCount, qt.Equals, 2)
	})
}

func TestNextID_NeverReused(t *testing.T) {
	c := qt.New(t)
	home := t.TempDir()
	st := store.New(home)

	col := store.NewCollection()
	col.Assign(&store.Record{Command: "a", CreatedAt: time.Now()})
	col.Assign(&store.Record{Command: "b", CreatedAt: time.Now()})
	c.Assert(col.NextID(), qt.Equals, 3)

	// Deleting the highest id must not free it for reuse.
	delete(col.Records, 2)
	c.Assert(st.Save(col), qt.IsNil)

	got := st.Load()
	c.Assert(got.NextID(), qt.Equals, 3)
	got.Assign(&store.Record{Command: "c", CreatedAt: time.Now()})
	c.Assert(got.Records[3].ID, qt.Equals, 3)
}

func TestSorted_HappyPath(t *testing.T) {
	c := qt.New(t)

	col := store.NewCollection()
	for _, cmd := range []string{"a", "b", "c"} {
		col.Assign(&store.Record{Command: cmd, CreatedAt: time.Now()})
	}

	recs := col.Sorted()
	c.Assert(recs, qt.HasLen, 3)
	c.Assert(recs[0].ID, qt.Equals, 1)
	c.Assert(recs[1].ID, qt.Equals, 2)
	c.Assert(recs[2].ID, qt.Equals, 3)
}
