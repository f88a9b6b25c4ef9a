// Package store owns the on-disk JSON collection of saved command records.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

// Record is a single saved command with its metadata.
type Record struct {
	ID          int
	Description string
	Tags        []string
	Alias       string // optional; unique across records when set
	Command     string // the literal command line to run or emit
	ShellExec   bool   // false = saved without executing at creation time
	UsageCount  int
	CreatedAt   time.Time
	LastUsedAt  *time.Time
}

// HasTag reports whether the record carries tag (case-sensitive).
func (r *Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	cp := *r
	cp.Tags = append([]string(nil), r.Tags...)
	if r.LastUsedAt != nil {
		t := *r.LastUsedAt
		cp.LastUsedAt = &t
	}
	return &cp
}

// Collection is the in-memory form of the commands file. LastID is a
// high-water mark: it never decreases, so ids are not reused after the
// highest-numbered record is deleted.
type Collection struct {
	LastID  int
	Records map[int]*Record
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{Records: make(map[int]*Record)}
}

// NextID returns the id the next added record must receive.
func (c *Collection) NextID() int { return c.LastID + 1 }

// Assign inserts rec under the next free id and advances the high-water mark.
func (c *Collection) Assign(rec *Record) {
	rec.ID = c.NextID()
	c.Records[rec.ID] = rec
	c.LastID = rec.ID
}

// Sorted returns the records ordered by ascending id.
func (c *Collection) Sorted() []*Record {
	out := make([]*Record, 0, len(c.Records))
	for _, r := range c.Records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---------------------------------------------------------------------------
// Wire format
// ---------------------------------------------------------------------------

// recordJSON is the persisted shape of a record. The id lives in the map key,
// not in the record itself.
type recordJSON struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Alias       string   `json:"alias,omitempty"`
	Command     string   `json:"command_text"`
	ShellExec   bool     `json:"shell_exec_flag"`
	UsageCount  int      `json:"usage_count"`
	CreatedAt   string   `json:"created_at"`
	LastUsedAt  string   `json:"last_used_at,omitempty"`
}

type fileJSON struct {
	LastID   int                   `json:"last_id"`
	Commands map[string]recordJSON `json:"commands"`
}

// legacyRecord is the array-of-records shape written by early releases.
type legacyRecord struct {
	ID          int      `json:"id"`
	Command     string   `json:"command"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Alias       string   `json:"alias,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UsedCount   int      `json:"used_count"`
	LastUsedAt  string   `json:"last_used_at,omitempty"`
}

func toWire(r *Record) recordJSON {
	w := recordJSON{
		Description: r.Description,
		Tags:        r.Tags,
		Alias:       r.Alias,
		Command:     r.Command,
		ShellExec:   r.ShellExec,
		UsageCount:  r.UsageCount,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
	if w.Tags == nil {
		w.Tags = []string{}
	}
	if r.LastUsedAt != nil {
		w.LastUsedAt = r.LastUsedAt.Format(time.RFC3339)
	}
	return w
}

func fromWire(id int, w recordJSON) *Record {
	r := &Record{
		ID:          id,
		Description: w.Description,
		Tags:        w.Tags,
		Alias:       w.Alias,
		Command:     w.Command,
		ShellExec:   w.ShellExec,
		UsageCount:  w.UsageCount,
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	r.CreatedAt = parseTime(w.CreatedAt)
	if w.LastUsedAt != "" {
		t := parseTime(w.LastUsedAt)
		r.LastUsedAt = &t
	}
	return r
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ---------------------------------------------------------------------------
// Store
// ---------------------------------------------------------------------------

// Store reads and writes the commands file for a single data home.
type Store struct {
	path string
}

// New returns a Store backed by <dataHome>/commands.json.
func New(dataHome string) *Store {
	return &Store{path: filepath.Join(dataHome, "commands.json")}
}

// Path returns the location of the backing file.
func (s *Store) Path() string { return s.path }

// Load reads the collection from disk. It fails soft: a missing, unreadable,
// or malformed file yields an empty collection with a warning, never an error.
// Legacy shapes (bare id→record object, array of records) are accepted.
func (s *Store) Load() *Collection {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return NewCollection()
	}
	if err != nil {
		slog.Warn("commands file is unreadable; starting with an empty collection", "path", s.path, "err", err)
		return NewCollection()
	}

	if col, ok := decodeFile(data); ok {
		return col
	}
	if col, ok := decodeBareMap(data); ok {
		return col
	}
	if col, ok := decodeLegacyArray(data); ok {
		return col
	}

	slog.Warn("commands file is corrupted; starting with an empty collection", "path", s.path)
	return NewCollection()
}

func decodeFile(data []byte) (*Collection, bool) {
	var f fileJSON
	if err := json.Unmarshal(data, &f); err != nil || f.Commands == nil {
		return nil, false
	}
	col := NewCollection()
	col.LastID = f.LastID
	for key, w := range f.Commands {
		id, err := strconv.Atoi(key)
		if err != nil || id <= 0 {
			return nil, false
		}
		col.Records[id] = fromWire(id, w)
		if id > col.LastID {
			col.LastID = id
		}
	}
	return col, true
}

func decodeBareMap(data []byte) (*Collection, bool) {
	var m map[string]recordJSON
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}
	col := NewCollection()
	for key, w := range m {
		id, err := strconv.Atoi(key)
		if err != nil || id <= 0 {
			return nil, false
		}
		col.Records[id] = fromWire(id, w)
		if id > col.LastID {
			col.LastID = id
		}
	}
	return col, true
}

func decodeLegacyArray(data []byte) (*Collection, bool) {
	var list []legacyRecord
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, false
	}
	col := NewCollection()
	for _, l := range list {
		if l.ID <= 0 {
			return nil, false
		}
		w := recordJSON{
			Description: l.Description,
			Tags:        l.Tags,
			Alias:       l.Alias,
			Command:     l.Command,
			UsageCount:  l.UsedCount,
			CreatedAt:   l.CreatedAt,
			LastUsedAt:  l.LastUsedAt,
		}
		col.Records[l.ID] = fromWire(l.ID, w)
		if l.ID > col.LastID {
			col.LastID = l.ID
		}
	}
	return col, true
}

// Save writes the whole collection back atomically (temp file + rename).
// Last writer wins; there is no cross-process locking.
func (s *Store) Save(col *Collection) error {
	f := fileJSON{
		LastID:   col.LastID,
		Commands: make(map[string]recordJSON, len(col.Records)),
	}
	for id, r := range col.Records {
		f.Commands[strconv.Itoa(id)] = toWire(r)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("store.Save: marshal: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store.Save: create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".commands-*.json")
	if err != nil {
		return fmt.Errorf("store.Save: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store.Save: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store.Save: close: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store.Save: rename: %w", err)
	}
	return nil
}
