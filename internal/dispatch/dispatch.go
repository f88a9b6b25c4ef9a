// Package dispatch routes already-parsed requests to the registry and the
// execution resolver, and owns the dual-channel output contract.
//
// The payload writer only ever carries command text meant for shell
// evaluation or display output of informational subcommands. Every
// warning, confirmation, prompt, and error goes to the diagnostic writer.
// A shell wrapper evals whatever appears on the payload channel of an
// effectful call, so a single stray diagnostic there becomes executed
// shell code.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-ports/see/internal/clip"
	"github.com/go-ports/see/internal/config"
	"github.com/go-ports/see/internal/execx"
	"github.com/go-ports/see/internal/history"
	"github.com/go-ports/see/internal/printer"
	"github.com/go-ports/see/internal/registry"
	"github.com/go-ports/see/internal/resolve"
	"github.com/go-ports/see/internal/secrets"
	"github.com/go-ports/see/internal/store"
	"github.com/go-ports/see/internal/tui"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1 // validation or runtime failure
	ExitNotFound = 2 // unknown id or alias
)

// ExitError carries a specific exit code to main. Err may be nil when the
// failure was already reported on the diagnostic channel (e.g. a child
// process that printed its own errors).
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

func (e *ExitError) Unwrap() error { return e.Err }

// Dispatcher is the single entry point for every subcommand.
type Dispatcher struct {
	Reg *registry.Registry
	Cfg *config.Config

	// PromptIn feeds placeholder prompts; defaults to os.Stdin.
	PromptIn io.Reader

	dataHome string
	payload  io.Writer
	diag     io.Writer
}

// New opens the store under dataHome (resolved via config when empty) and
// returns a Dispatcher writing to the given channels.
func New(dataHome string, payload, diag io.Writer) (*Dispatcher, error) {
	if dataHome == "" {
		dataHome = config.GetDataHome()
	}
	cfg, err := config.Load(filepath.Join(dataHome, "config.yaml"))
	if err != nil {
		return nil, fmt.Errorf("dispatch.New: load config: %w", err)
	}
	return &Dispatcher{
		Reg:      registry.New(store.New(dataHome)),
		Cfg:      cfg,
		PromptIn: os.Stdin,
		dataHome: dataHome,
		payload:  payload,
		diag:     diag,
	}, nil
}

// ---------------------------------------------------------------------------
// Add
// ---------------------------------------------------------------------------

// AddRequest is the implicit add form: save a command and, unless
// SaveOnly is set, execute it immediately.
type AddRequest struct {
	Description string
	Tags        []string
	Alias       string
	Command     string
	SaveOnly    bool
	ShellMode   bool
}

// Add saves the command and runs the add-and-execute path.
func (d *Dispatcher) Add(ctx context.Context, req AddRequest) error {
	res, err := d.Reg.Add(registry.AddInput{
		Description: req.Description,
		Tags:        req.Tags,
		Alias:       req.Alias,
		Command:     req.Command,
		ShellExec:   !req.SaveOnly,
	})
	if err != nil {
		return err
	}

	rec := res.Record
	switch {
	case res.Created:
		fmt.Fprintf(d.diag, "Command saved with ID %d\n", rec.ID)
		d.warnSecrets(rec.Command)
	case res.MergedTags:
		fmt.Fprintf(d.diag, "Merged tags for existing command ID %d\n", rec.ID)
	default:
		fmt.Fprintf(d.diag, "Command already exists: ID %d\n", rec.ID)
	}

	if req.SaveOnly {
		return nil
	}

	if req.ShellMode {
		fmt.Fprintln(d.payload, rec.Command)
		return d.recordInitialRun(rec.ID)
	}

	fmt.Fprintf(d.diag, "Running: %s\n", rec.Command)
	code, err := execx.Run(ctx, rec.Command, d.payload, d.diag)
	if err != nil {
		return err
	}
	if code != 0 {
		fmt.Fprintf(d.diag, "Command exited with code %d\n", code)
		return &ExitError{Code: code}
	}
	return d.recordInitialRun(rec.ID)
}

// warnSecrets flags command text that looks like it embeds a credential.
// Records are stored in plain text, so this is warn-only; the user may
// well want the command saved anyway.
func (d *Dispatcher) warnSecrets(command string) {
	extra, err := secrets.LoadIgnore(filepath.Join(d.dataHome, "secretignore"))
	if err != nil {
		fmt.Fprintf(d.diag, "Warning: %v\n", err)
	}
	for _, label := range secrets.Detect(command, extra) {
		fmt.Fprintf(d.diag, "Warning: command appears to contain a %s and is stored in plain text\n", label)
	}
}

// recordInitialRun applies the count_initial_run policy to the
// creation-time execution.
func (d *Dispatcher) recordInitialRun(id int) error {
	if !d.Cfg.Policy.CountInitialRun {
		return nil
	}
	return d.Reg.RecordUsage(id)
}

// ---------------------------------------------------------------------------
// Run
// ---------------------------------------------------------------------------

// Run resolves token (alias first, then integer id) and either emits the
// command text on the payload channel (shell mode), executes it as a
// subprocess (direct mode), or reports what would run (dry run).
func (d *Dispatcher) Run(ctx context.Context, token string, args []string, shellMode, dryRun bool) error {
	res, err := resolve.Token(d.Reg, token)
	if err != nil {
		return err
	}
	if res.Subcommand != "" {
		return fmt.Errorf("dispatch.Run: %q is a subcommand, not a saved command", token)
	}
	rec := res.Record

	command := rec.Command
	if params := execx.Params(command); len(params) > 0 {
		if len(args) > 0 {
			command = execx.SubstitutePositional(command, args)
		} else {
			fmt.Fprintf(d.diag, "Command has placeholders: %s\n", strings.Join(params, ", "))
			values := execx.PromptValues(params, d.promptIn(), d.diag)
			if values == nil {
				fmt.Fprintln(d.diag, "Cancelled.")
				return &ExitError{Code: ExitFailure}
			}
			command = execx.Substitute(command, values)
		}
	}

	if dryRun {
		fmt.Fprintf(d.diag, "(dry run) Would execute: %s\n", command)
		return nil
	}

	if shellMode {
		// The payload carries the command text verbatim and nothing else.
		fmt.Fprintln(d.payload, command)
		return d.Reg.RecordUsage(rec.ID)
	}

	code, err := execx.Run(ctx, command, d.payload, d.diag)
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return d.Reg.RecordUsage(rec.ID)
}

func (d *Dispatcher) promptIn() io.Reader {
	if d.PromptIn != nil {
		return d.PromptIn
	}
	return os.Stdin
}

// ---------------------------------------------------------------------------
// Informational operations
// ---------------------------------------------------------------------------

// List prints matching records as a table.
func (d *Dispatcher) List(opts registry.ListOptions) error {
	recs := d.Reg.List(opts)
	if len(recs) == 0 {
		fmt.Fprintln(d.payload, "No commands found.")
		return nil
	}
	printer.Table(d.payload, recs)
	return nil
}

// Search prints records matching the keyword and tag filter.
func (d *Dispatcher) Search(keyword string, tags []string) error {
	recs := d.Reg.Search(keyword, tags)
	if len(recs) == 0 {
		fmt.Fprintln(d.payload, "No commands found matching your search.")
		return nil
	}
	for _, rec := range recs {
		printer.Record(d.payload, rec)
	}
	return nil
}

// Show prints a single record, optionally copying its command text to the
// clipboard. Show never counts as usage.
func (d *Dispatcher) Show(token string, copyToClipboard bool) error {
	rec, err := d.Reg.Lookup(token)
	if err != nil {
		return err
	}
	printer.Record(d.payload, rec)
	if copyToClipboard {
		if err := clip.Copy(rec.Command); err != nil {
			fmt.Fprintf(d.diag, "Warning: %v\n", err)
			return nil
		}
		fmt.Fprintln(d.diag, "Copied to clipboard.")
	}
	return nil
}

// Delete removes the listed ids.
func (d *Dispatcher) Delete(ids []int) error {
	n, err := d.Reg.DeleteMany(ids)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no commands to delete: %w", registry.ErrNotFound)
	}
	if n == 1 {
		fmt.Fprintln(d.diag, "Command deleted.")
	} else {
		fmt.Fprintf(d.diag, "%d commands deleted.\n", n)
	}
	return nil
}

// Edit applies a partial update and prints the resulting record.
func (d *Dispatcher) Edit(id int, in registry.UpdateInput) error {
	rec, err := d.Reg.Update(id, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.diag, "Command %d updated.\n", id)
	printer.Record(d.payload, rec)
	return nil
}

// SetAlias assigns an alias to the record with the given id.
func (d *Dispatcher) SetAlias(id int, alias string) error {
	if _, err := d.Reg.Update(id, registry.UpdateInput{Alias: &alias}); err != nil {
		return err
	}
	fmt.Fprintf(d.diag, "Alias %q assigned to command %d.\n", alias, id)
	return nil
}

// Stats prints the aggregate statistics.
func (d *Dispatcher) Stats() error {
	printer.Stats(d.payload, d.Reg.Stats())
	return nil
}

// Tags prints every tag with its record count.
func (d *Dispatcher) Tags() error {
	counts := d.Reg.TagCounts()
	if len(counts) == 0 {
		fmt.Fprintln(d.payload, "No tags found.")
		return nil
	}
	printer.Tags(d.payload, counts)
	return nil
}

// ---------------------------------------------------------------------------
// Import
// ---------------------------------------------------------------------------

// ImportRequest selects the history source for Import.
type ImportRequest struct {
	FromHistory bool
	File        string
	Lines       int
	NoFilter    bool
}

// Import reads commands from a history file and saves each as a record,
// deduplicating against existing command text.
func (d *Dispatcher) Import(req ImportRequest) error {
	var source string
	switch {
	case req.File != "":
		if _, err := os.Stat(req.File); err != nil {
			return fmt.Errorf("import file %s: %w", req.File, registry.ErrNotFound)
		}
		source = req.File
	case req.FromHistory:
		path, ok := history.DetectFile()
		if !ok {
			return fmt.Errorf("could not find a shell history file: %w", registry.ErrNotFound)
		}
		fmt.Fprintf(d.diag, "Reading from: %s\n", path)
		source = path
	default:
		return &registry.ValidationError{Msg: "specify --history or --file"}
	}

	lines := req.Lines
	if lines <= 0 {
		lines = d.Cfg.Policy.HistoryLines
	}

	commands := history.Read(source, lines)
	if !req.NoFilter {
		commands = history.FilterTrivial(commands)
	}
	if len(commands) == 0 {
		fmt.Fprintln(d.payload, "No commands found to import.")
		return nil
	}

	imported, skipped := 0, 0
	for _, cmd := range commands {
		res, err := d.Reg.Add(registry.AddInput{Command: cmd})
		if err != nil {
			return err
		}
		display := cmd
		if len(display) > 60 {
			display = display[:60] + "..."
		}
		if res.Created {
			imported++
			fmt.Fprintf(d.payload, "  ADD:  %s\n", display)
		} else {
			skipped++
			fmt.Fprintf(d.payload, "  SKIP: %s\n", display)
		}
	}
	fmt.Fprintf(d.payload, "Imported: %d, Skipped (exists): %d\n", imported, skipped)
	return nil
}

// ---------------------------------------------------------------------------
// Interactive
// ---------------------------------------------------------------------------

// Interactive opens the picker and executes the selection directly. The
// picker renders on the diagnostic terminal, so the payload channel stays
// clean; shell mode is never used here because a TUI cannot hand text
// back to the wrapper for eval.
func (d *Dispatcher) Interactive(ctx context.Context) error {
	recs := d.Reg.List(registry.ListOptions{Sort: registry.SortRecent})
	if len(recs) == 0 {
		fmt.Fprintln(d.payload, "No commands found.")
		return nil
	}

	rec, ok, err := tui.Pick(recs)
	if err != nil {
		return fmt.Errorf("dispatch.Interactive: %w", err)
	}
	if !ok {
		return nil
	}
	return d.Run(ctx, strconv.Itoa(rec.ID), nil, false, false)
}
