package registry_test

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/see/internal/registry"
	"github.com/go-ports/see/internal/store"
)

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	return registry.New(store.New(t.TempDir()))
}

func mustAdd(c *qt.C, r *registry.Registry, in registry.AddInput) *store.Record {
	c.Helper()
	res, err := r.Add(in)
	c.Assert(err, qt.IsNil)
	return res.Record
}

func TestAdd_HappyPath(t *testing.T) {
	c := qt.New(t)
	r := newRegistry(t)

	res, err := r.Add(registry.AddInput{
		Description: "list pods",
		Tags:        []string{"k8s"},
		Alias:       "pods",
		Command:     "kubectl get pods",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(res.Created, qt.IsTrue)
	c.Assert(res.Record.ID, qt.Equals, 1)
	c.Assert(res.Record.Alias, qt.Equals, "pods")
	c.Assert(res.Record.CreatedAt.IsZero(), qt.IsFalse)

	res2, err := r.Add(registry.AddInput{Command: "echo hi"})
	c.Assert(err, qt.IsNil)
	c.Assert(res2.Record.ID, qt.Equals, 2)
}

func TestAdd_Dedupe(t *testing.T) {
	c := qt.New(t)

	c.Run("identical command text is not duplicated", func(c *qt.C) {
		r := newRegistry(t)
		first := mustAdd(c, r, registry.AddInput{Command: "echo hi"})

		res, err := r.Add(registry.AddInput{Command: "  echo hi  "})
		c.Assert(err, qt.IsNil)
		c.Assert(res.Created, qt.IsFalse)
		c.Assert(res.Record.ID, qt.Equals, first.ID)
		c.Assert(r.Len(), qt.Equals, 1)
	})

	c.Run("new tags merge into the existing record", func(c *qt.C) {
		r := newRegistry(t)
		mustAdd(c, r, registry.AddInput{Command: "echo hi", Tags: []string{"b"}})

		res, err := r.Add(registry.AddInput{Command: "echo hi", Tags: []string{"a", "b"}})
		c.Assert(err, qt.IsNil)
		c.Assert(res.MergedTags, qt.IsTrue)
		c.Assert(res.Record.Tags, qt.DeepEquals, []string{"a", "b"})
	})

	c.Run("alias on duplicate updates the existing record", func(c *qt.C) {
		r := newRegistry(t)
		mustAdd(c, r, registry.AddInput{Command: "echo hi"})

		res, err := r.Add(registry.AddInput{Command: "echo hi", Alias: "hi"})
		c.Assert(err, qt.IsNil)
		c.Assert(res.Record.Alias, qt.Equals, "hi")
	})
}

func TestAdd_SadPath(t *testing.T) {
	c := qt.New(t)
	r := newRegistry(t)

	_, err := r.Add(registry.AddInput{Command: "   "})
	var verr *registry.ValidationError
	c.Assert(errors.As(err, &verr), qt.IsTrue)
}

func TestValidateAlias(t *testing.T) {
	c := qt.New(t)
	r := newRegistry(t)
	rec := mustAdd(c, r, registry.AddInput{Command: "echo hi", Alias: "greet"})

	tests := []struct {
		name    string
		alias   string
		id      int
		wantErr string
	}{
		{name: "empty", alias: "", wantErr: "must not be empty"},
		{name: "flag-like", alias: "-v", wantErr: "must not start with '-'"},
		{name: "reserved subcommand", alias: "list", wantErr: "reserved subcommand"},
		{name: "program name", alias: "see", wantErr: "reserved subcommand"},
		{name: "shell builtin", alias: "cd", wantErr: "shadows a shell builtin"},
		{name: "system command", alias: "ls", wantErr: "shadows a shell builtin"},
		{name: "taken by another record", alias: "greet", id: 99, wantErr: "already in use"},
		{name: "own alias passes", alias: "greet", id: rec.ID},
		{name: "fresh alias passes", alias: "deploy"},
	}

	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			err := r.ValidateAlias(tt.alias, tt.id)
			if tt.wantErr == "" {
				c.Assert(err, qt.IsNil)
				return
			}
			c.Assert(err, qt.ErrorMatches, ".*"+tt.wantErr+".*")
		})
	}
}

func TestLookup(t *testing.T) {
	c := qt.New(t)
	r := newRegistry(t)
	rec := mustAdd(c, r, registry.AddInput{Command: "echo hi", Alias: "greet"})

	c.Run("by id string", func(c *qt.C) {
		got, err := r.Lookup("1")
		c.Assert(err, qt.IsNil)
		c.Assert(got.ID, qt.Equals, rec.ID)
	})

	c.Run("by alias", func(c *qt.C) {
		got, err := r.Lookup("greet")
		c.Assert(err, qt.IsNil)
		c.Assert(got.ID, qt.Equals, rec.ID)
	})

	c.Run("unknown id", func(c *qt.C) {
		_, err := r.Lookup("42")
		c.Assert(errors.Is(err, registry.ErrNotFound), qt.IsTrue)
	})

	c.Run("unknown alias", func(c *qt.C) {
		_, err := r.Lookup("nope")
		c.Assert(errors.Is(err, registry.ErrNotFound), qt.IsTrue)
	})
}

func TestUpdate(t *testing.T) {
	c := qt.New(t)
	r := newRegistry(t)
	rec := mustAdd(c, r, registry.AddInput{
		Description: "old",
		Tags:        []string{"a"},
		Command:     "echo hi",
	})

	c.Run("partial update leaves other fields alone", func(c *qt.C) {
		desc := "new description"
		got, err := r.Update(rec.ID, registry.UpdateInput{Description: &desc})
		c.Assert(err, qt.IsNil)
		c.Assert(got.Description, qt.Equals, "new description")
		c.Assert(got.Tags, qt.DeepEquals, []string{"a"})
	})

	c.Run("tags replace the existing set", func(c *qt.C) {
		got, err := r.Update(rec.ID, registry.UpdateInput{Tags: []string{"x", "y"}})
		c.Assert(err, qt.IsNil)
		c.Assert(got.Tags, qt.DeepEquals, []string{"x", "y"})
	})

	c.Run("invalid alias rejected", func(c *qt.C) {
		alias := "list"
		_, err := r.Update(rec.ID, registry.UpdateInput{Alias: &alias})
		var verr *registry.ValidationError
		c.Assert(errors.As(err, &verr), qt.IsTrue)
	})

	c.Run("unknown id", func(c *qt.C) {
		desc := "x"
		_, err := r.Update(99, registry.UpdateInput{Description: &desc})
		c.Assert(errors.Is(err, registry.ErrNotFound), qt.IsTrue)
	})
}

func TestDelete(t *testing.T) {
	c := qt.New(t)

	c.Run("ids are never reused after deleting the highest", func(c *qt.C) {
		home := t.TempDir()
		r := registry.New(store.New(home))
		mustAdd(c, r, registry.AddInput{Command: "a"})
		rec := mustAdd(c, r, registry.AddInput{Command: "b"})

		ok, err := r.Delete(rec.ID)
		c.Assert(err, qt.IsNil)
		c.Assert(ok, qt.IsTrue)

		// Reload from disk; the next id must still advance.
		r2 := registry.New(store.New(home))
		got := mustAdd(c, r2, registry.AddInput{Command: "c"})
		c.Assert(got.ID, qt.Equals, 3)
	})

	c.Run("missing id reports not deleted", func(c *qt.C) {
		r := newRegistry(t)
		ok, err := r.Delete(7)
		c.Assert(err, qt.IsNil)
		c.Assert(ok, qt.IsFalse)
	})

	c.Run("delete many counts only existing ids", func(c *qt.C) {
		r := newRegistry(t)
		mustAdd(c, r, registry.AddInput{Command: "a"})
		mustAdd(c, r, registry.AddInput{Command: "b"})

		n, err := r.DeleteMany([]int{1, 2, 99})
		c.Assert(err, qt.IsNil)
		c.Assert(n, qt.Equals, 2)
		c.Assert(r.Len(), qt.Equals, 0)
	})
}

func TestList(t *testing.T) {
	c := qt.New(t)
	r := newRegistry(t)
	mustAdd(c, r, registry.AddInput{Command: "a", Tags: []string{"x"}})
	mustAdd(c, r, registry.AddInput{Command: "b", Tags: []string{"y"}})
	mustAdd(c, r, registry.AddInput{Command: "c", Tags: []string{"x", "y"}})

	c.Run("default sort is newest first", func(c *qt.C) {
		recs := r.List(registry.ListOptions{})
		c.Assert(recs, qt.HasLen, 3)
		c.Assert(recs[0].Command, qt.Equals, "c")
		c.Assert(recs[2].Command, qt.Equals, "a")
	})

	c.Run("tag filter keeps records with any matching tag", func(c *qt.C) {
		recs := r.List(registry.ListOptions{Tags: []string{"x"}})
		c.Assert(recs, qt.HasLen, 2)
	})

	c.Run("tag filter is case-sensitive", func(c *qt.C) {
		recs := r.List(registry.ListOptions{Tags: []string{"X"}})
		c.Assert(recs, qt.HasLen, 0)
	})

	c.Run("limit truncates", func(c *qt.C) {
		recs := r.List(registry.ListOptions{Limit: 2})
		c.Assert(recs, qt.HasLen, 2)
	})

	c.Run("used sort orders by usage count", func(c *qt.C) {
		c.Assert(r.RecordUsage(1), qt.IsNil)
		c.Assert(r.RecordUsage(1), qt.IsNil)
		c.Assert(r.RecordUsage(2), qt.IsNil)

		recs := r.List(registry.ListOptions{Sort: registry.SortUsed})
		c.Assert(recs[0].Command, qt.Equals, "a")
		c.Assert(recs[1].Command, qt.Equals, "b")
	})
}

func TestSearch(t *testing.T) {
	c := qt.New(t)
	r := newRegistry(t)
	mustAdd(c, r, registry.AddInput{Command: "kubectl get pods", Description: "pods", Tags: []string{"k8s"}})
	mustAdd(c, r, registry.AddInput{Command: "docker ps", Description: "containers", Tags: []string{"docker"}})

	c.Run("keyword matches command text case-insensitively", func(c *qt.C) {
		recs := r.Search("KUBECTL", nil)
		c.Assert(recs, qt.HasLen, 1)
		c.Assert(recs[0].Command, qt.Equals, "kubectl get pods")
	})

	c.Run("keyword matches description", func(c *qt.C) {
		recs := r.Search("containers", nil)
		c.Assert(recs, qt.HasLen, 1)
	})

	c.Run("keyword and tag filter intersect", func(c *qt.C) {
		recs := r.Search("pods", []string{"docker"})
		c.Assert(recs, qt.HasLen, 0)
	})

	c.Run("no match", func(c *qt.C) {
		recs := r.Search("terraform", nil)
		c.Assert(recs, qt.HasLen, 0)
	})
}

func TestUsageAndStats(t *testing.T) {
	c := qt.New(t)
	home := t.TempDir()
	r := registry.New(store.New(home))
	mustAdd(c, r, registry.AddInput{Command: "a", Tags: []string{"x"}})
	mustAdd(c, r, registry.AddInput{Command: "b", Tags: []string{"x", "y"}})
	mustAdd(c, r, registry.AddInput{Command: "c"})

	c.Assert(r.RecordUsage(2), qt.IsNil)
	c.Assert(r.RecordUsage(2), qt.IsNil)
	c.Assert(r.RecordUsage(1), qt.IsNil)

	st := r.Stats()
	c.Assert(st.Total, qt.Equals, 3)
	c.Assert(st.TotalUsage, qt.Equals, 3)
	c.Assert(st.UniqueTags, qt.Equals, 2)
	c.Assert(st.Tags, qt.DeepEquals, []string{"x", "y"})
	c.Assert(st.MostUsed, qt.HasLen, 2) // never-used records excluded
	c.Assert(st.MostUsed[0].Command, qt.Equals, "b")

	// Usage survives a reload.
	r2 := registry.New(store.New(home))
	rec, err := r2.Get(2)
	c.Assert(err, qt.IsNil)
	c.Assert(rec.UsageCount, qt.Equals, 2)
	c.Assert(rec.LastUsedAt, qt.IsNotNil)

	counts := r2.TagCounts()
	c.Assert(counts, qt.DeepEquals, map[string]int{"x": 2, "y": 1})
}
