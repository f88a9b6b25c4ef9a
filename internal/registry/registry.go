// Package registry implements record lifecycle, alias resolution, and
// usage bookkeeping on top of the record store.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-ports/see/internal/resolve"
	"github.com/go-ports/see/internal/store"
)

// ErrNotFound is returned when no record matches the requested id or alias.
var ErrNotFound = errors.New("command not found")

// ValidationError reports a rejected alias or malformed input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, a ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, a...)}
}

// Registry owns a loaded collection and persists every mutation through
// its store. One Registry per invocation; no process-wide singleton.
type Registry struct {
	st  *store.Store
	col *store.Collection
	now func() time.Time
}

// New loads the collection from st and returns a Registry over it.
// Loading fails soft, so New never errors.
func New(st *store.Store) *Registry {
	return &Registry{st: st, col: st.Load(), now: time.Now}
}

// Len returns the number of records.
func (r *Registry) Len() int { return len(r.col.Records) }

func (r *Registry) persist() error {
	if err := r.st.Save(r.col); err != nil {
		return fmt.Errorf("registry: persist: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Lookup
// ---------------------------------------------------------------------------

// Get returns the record with the given id.
func (r *Registry) Get(id int) (*store.Record, error) {
	rec, ok := r.col.Records[id]
	if !ok {
		return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	return rec, nil
}

// GetByAlias returns the record carrying alias.
func (r *Registry) GetByAlias(alias string) (*store.Record, error) {
	if alias != "" {
		for _, rec := range r.col.Sorted() {
			if rec.Alias == alias {
				return rec, nil
			}
		}
	}
	return nil, fmt.Errorf("alias %q: %w", alias, ErrNotFound)
}

// Lookup resolves token as an integer id when it parses as one, and as an
// alias otherwise.
func (r *Registry) Lookup(token string) (*store.Record, error) {
	if id, err := strconv.Atoi(token); err == nil {
		return r.Get(id)
	}
	return r.GetByAlias(token)
}

// ---------------------------------------------------------------------------
// Add
// ---------------------------------------------------------------------------

// AddInput is the caller-supplied data for a new record.
type AddInput struct {
	Description string
	Tags        []string
	Alias       string
	Command     string
	ShellExec   bool
}

// AddResult reports what Add did. When the trimmed command text matches an
// existing record, that record is updated in place instead of duplicated.
type AddResult struct {
	Record     *store.Record
	Created    bool // a new record was created
	MergedTags bool // an existing record gained tags
}

// Add validates the input, dedupes on identical command text, assigns the
// next id, and persists.
func (r *Registry) Add(in AddInput) (*AddResult, error) {
	command := strings.TrimSpace(in.Command)
	if command == "" {
		return nil, validationf("command text must not be empty")
	}

	if existing := r.findByCommand(command); existing != nil {
		res := &AddResult{Record: existing}
		changed := false
		if in.Alias != "" && in.Alias != existing.Alias {
			if err := r.ValidateAlias(in.Alias, existing.ID); err != nil {
				return nil, err
			}
			existing.Alias = in.Alias
			changed = true
		}
		if mergeTags(existing, in.Tags) {
			res.MergedTags = true
			changed = true
		}
		if changed {
			if err := r.persist(); err != nil {
				return nil, err
			}
		}
		return res, nil
	}

	if in.Alias != "" {
		if err := r.ValidateAlias(in.Alias, 0); err != nil {
			return nil, err
		}
	}

	rec := &store.Record{
		Description: in.Description,
		Tags:        append([]string{}, in.Tags...),
		Alias:       in.Alias,
		Command:     command,
		ShellExec:   in.ShellExec,
		CreatedAt:   r.now(),
	}
	r.col.Assign(rec)
	if err := r.persist(); err != nil {
		return nil, err
	}
	return &AddResult{Record: rec, Created: true}, nil
}

func (r *Registry) findByCommand(command string) *store.Record {
	for _, rec := range r.col.Sorted() {
		if strings.TrimSpace(rec.Command) == command {
			return rec
		}
	}
	return nil
}

// mergeTags unions tags into rec.Tags, keeping the result sorted.
// Reports whether rec gained any tag.
func mergeTags(rec *store.Record, tags []string) bool {
	have := make(map[string]bool, len(rec.Tags))
	for _, t := range rec.Tags {
		have[t] = true
	}
	added := false
	for _, t := range tags {
		if !have[t] {
			have[t] = true
			rec.Tags = append(rec.Tags, t)
			added = true
		}
	}
	if added {
		sort.Strings(rec.Tags)
	}
	return added
}

// ---------------------------------------------------------------------------
// Alias validation
// ---------------------------------------------------------------------------

// ValidateAlias rejects empty aliases, flag-like aliases, collisions with
// reserved subcommand names or the shell deny list, and aliases already
// held by a different record. Re-assigning a record its own alias passes.
func (r *Registry) ValidateAlias(alias string, currentID int) error {
	if alias == "" {
		return validationf("alias must not be empty")
	}
	if strings.HasPrefix(alias, "-") {
		return validationf("alias %q must not start with '-'", alias)
	}
	if resolve.IsReserved(alias) {
		return validationf("alias %q is a reserved subcommand name", alias)
	}
	if resolve.IsDenied(alias) {
		return validationf("alias %q shadows a shell builtin or system command", alias)
	}
	if existing, err := r.GetByAlias(alias); err == nil && existing.ID != currentID {
		return validationf("alias %q is already in use by command %d", alias, existing.ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Update / delete
// ---------------------------------------------------------------------------

// UpdateInput holds the fields of a partial update. Nil pointers and a nil
// tag slice leave the corresponding field untouched.
type UpdateInput struct {
	Description *string
	Tags        []string
	Alias       *string
}

// Update applies a partial update to the record with the given id.
func (r *Registry) Update(id int, in UpdateInput) (*store.Record, error) {
	rec, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	changed := false
	if in.Description != nil {
		rec.Description = *in.Description
		changed = true
	}
	if in.Tags != nil {
		rec.Tags = append([]string{}, in.Tags...)
		changed = true
	}
	if in.Alias != nil && *in.Alias != rec.Alias {
		if err := r.ValidateAlias(*in.Alias, id); err != nil {
			return nil, err
		}
		rec.Alias = *in.Alias
		changed = true
	}

	if changed {
		if err := r.persist(); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// Delete removes the record with the given id. Reports whether a record
// existed; the store is untouched when nothing matched.
func (r *Registry) Delete(id int) (bool, error) {
	n, err := r.DeleteMany([]int{id})
	return n > 0, err
}

// DeleteMany removes every listed id and returns how many records existed.
func (r *Registry) DeleteMany(ids []int) (int, error) {
	deleted := 0
	for _, id := range ids {
		if _, ok := r.col.Records[id]; ok {
			delete(r.col.Records, id)
			deleted++
		}
	}
	if deleted == 0 {
		return 0, nil
	}
	if err := r.persist(); err != nil {
		return 0, err
	}
	return deleted, nil
}

// ---------------------------------------------------------------------------
// List / search
// ---------------------------------------------------------------------------

// Sort orders for List.
const (
	SortCreated = "created" // newest first (default)
	SortRecent  = "recent"  // most recently used first
	SortUsed    = "used"    // most used first
)

// ListOptions filters and orders a listing.
type ListOptions struct {
	Tags  []string
	Limit int
	Sort  string
}

// List returns records filtered by tag membership, ordered per opts.Sort,
// truncated to opts.Limit when positive.
func (r *Registry) List(opts ListOptions) []*store.Record {
	recs := r.filterTags(r.col.Sorted(), opts.Tags)

	switch opts.Sort {
	case SortRecent:
		sort.SliceStable(recs, func(i, j int) bool {
			return lastUsed(recs[i]).After(lastUsed(recs[j]))
		})
	case SortUsed:
		sort.SliceStable(recs, func(i, j int) bool {
			if recs[i].UsageCount != recs[j].UsageCount {
				return recs[i].UsageCount > recs[j].UsageCount
			}
			return recs[i].ID < recs[j].ID
		})
	default: // SortCreated: ids are monotonic, so newest == highest id
		sort.SliceStable(recs, func(i, j int) bool { return recs[i].ID > recs[j].ID })
	}

	if opts.Limit > 0 && len(recs) > opts.Limit {
		recs = recs[:opts.Limit]
	}
	return recs
}

func lastUsed(r *store.Record) time.Time {
	if r.LastUsedAt == nil {
		return time.Time{}
	}
	return *r.LastUsedAt
}

// Search matches keyword case-insensitively against description and
// command text, intersected with the tag filter when both are given.
func (r *Registry) Search(keyword string, tags []string) []*store.Record {
	recs := r.filterTags(r.col.Sorted(), tags)
	if keyword == "" {
		return recs
	}
	kw := strings.ToLower(keyword)
	out := recs[:0]
	for _, rec := range recs {
		if strings.Contains(strings.ToLower(rec.Command), kw) ||
			strings.Contains(strings.ToLower(rec.Description), kw) {
			out = append(out, rec)
		}
	}
	return out
}

// filterTags keeps records carrying at least one of the given tags
// (case-sensitive). A nil/empty filter keeps everything.
func (r *Registry) filterTags(recs []*store.Record, tags []string) []*store.Record {
	if len(tags) == 0 {
		return recs
	}
	out := make([]*store.Record, 0, len(recs))
	for _, rec := range recs {
		for _, t := range tags {
			if rec.HasTag(t) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Usage / stats
// ---------------------------------------------------------------------------

// RecordUsage increments the usage count, stamps last_used_at, and persists.
func (r *Registry) RecordUsage(id int) error {
	rec, err := r.Get(id)
	if err != nil {
		return err
	}
	rec.UsageCount++
	t := r.now()
	rec.LastUsedAt = &t
	return r.persist()
}

// Stats is the aggregate returned by the stats operation.
type Stats struct {
	Total      int
	TotalUsage int
	UniqueTags int
	Tags       []string
	MostUsed   []*store.Record // top 5 by usage, ties broken by lower id
}

// Stats aggregates the collection. Records that were never used are
// excluded from MostUsed.
func (r *Registry) Stats() Stats {
	st := Stats{Total: len(r.col.Records)}

	tagSet := make(map[string]bool)
	used := make([]*store.Record, 0, len(r.col.Records))
	for _, rec := range r.col.Sorted() {
		st.TotalUsage += rec.UsageCount
		for _, t := range rec.Tags {
			tagSet[t] = true
		}
		if rec.UsageCount > 0 {
			used = append(used, rec)
		}
	}

	st.UniqueTags = len(tagSet)
	for t := range tagSet {
		st.Tags = append(st.Tags, t)
	}
	sort.Strings(st.Tags)

	sort.SliceStable(used, func(i, j int) bool {
		if used[i].UsageCount != used[j].UsageCount {
			return used[i].UsageCount > used[j].UsageCount
		}
		return used[i].ID < used[j].ID
	})
	if len(used) > 5 {
		used = used[:5]
	}
	st.MostUsed = used
	return st
}

// TagCounts returns each tag with the number of records carrying it.
func (r *Registry) TagCounts() map[string]int {
	counts := make(map[string]int)
	for _, rec := range r.col.Records {
		for _, t := range rec.Tags {
			counts[t]++
		}
	}
	return counts
}
