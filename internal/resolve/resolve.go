// Package resolve holds the subcommand classification and the token
// resolution rules for effectful calls.
//
// The classification is a static, exhaustive enumeration shared by the
// dispatcher and the generated shell wrappers: a wrapper decides locally
// whether to capture-and-eval stdout, so both sides must agree on which
// names are informational. Changing these lists changes the wrapper
// contract.
package resolve

import (
	"sort"
	"strconv"

	"github.com/go-ports/see/internal/store"
)

// Class says how a subcommand's output must be handled by a shell wrapper.
type Class int

const (
	// ClassUnknown is returned for names that are not subcommands.
	ClassUnknown Class = iota
	// ClassInformational output is pure display text, safe to print directly.
	ClassInformational
	// ClassEffectful output must be captured and evaluated in the caller's
	// shell to take effect.
	ClassEffectful
)

// informational subcommands never need evaluation in the parent shell.
var informational = []string{
	"list", "search", "show", "delete", "edit", "alias", "stats",
	"tags", "import", "interactive", "i", "install", "mcp", "help",
}

// effectful subcommands resolve to command text that acts on the parent
// shell. "add" covers the implicit add-and-execute form.
var effectful = []string{"run", "add"}

// aliasOnly names are reserved for alias validation but are not
// dispatchable subcommands ("see" would recurse through the wrapper).
var aliasOnly = []string{"see"}

// ShellDenyList holds shell builtins and common system commands that an
// alias may never shadow.
var ShellDenyList = []string{
	"cd", "exit", "logout", "pwd", "clear", "history", "type",
	"unalias", "export", "unset", "set", "env", "source", ".",
	"ls", "cp", "mv", "rm", "mkdir", "grep", "cat", "echo",
	"man", "sudo", "which", "whoami", "true", "false", "test",
}

// Classify returns the class of a subcommand name, or ClassUnknown for
// names that are not subcommands.
func Classify(name string) Class {
	for _, n := range informational {
		if n == name {
			return ClassInformational
		}
	}
	for _, n := range effectful {
		if n == name {
			return ClassEffectful
		}
	}
	return ClassUnknown
}

// IsReserved reports whether name may not be used as a record alias.
func IsReserved(name string) bool {
	if Classify(name) != ClassUnknown {
		return true
	}
	for _, n := range aliasOnly {
		if n == name {
			return true
		}
	}
	return false
}

// IsDenied reports whether name is on the shell builtin deny list.
func IsDenied(name string) bool {
	for _, n := range ShellDenyList {
		if n == name {
			return true
		}
	}
	return false
}

// InformationalNames returns the informational subcommand names in wrapper
// order. The installer embeds this list verbatim in the generated shell
// functions.
func InformationalNames() []string {
	return append([]string(nil), informational...)
}

// ReservedNames returns every name an alias must not collide with,
// sorted for stable diagnostics.
func ReservedNames() []string {
	out := make([]string, 0, len(informational)+len(effectful)+len(aliasOnly))
	out = append(out, informational...)
	out = append(out, effectful...)
	out = append(out, aliasOnly...)
	sort.Strings(out)
	return out
}

// ---------------------------------------------------------------------------
// Token resolution
// ---------------------------------------------------------------------------

// Lookup is the registry surface the resolver needs.
type Lookup interface {
	Get(id int) (*store.Record, error)
	GetByAlias(alias string) (*store.Record, error)
}

// Resolution is the outcome of resolving the first positional argument of
// an effectful call. Exactly one field is set.
type Resolution struct {
	Subcommand string
	Record     *store.Record
}

// Token resolves token in order: exact reserved subcommand name, then
// alias, then integer id. A miss on all three returns the registry's
// not-found error.
func Token(l Lookup, token string) (Resolution, error) {
	if Classify(token) != ClassUnknown {
		return Resolution{Subcommand: token}, nil
	}
	if rec, err := l.GetByAlias(token); err == nil {
		return Resolution{Record: rec}, nil
	}
	id, convErr := strconv.Atoi(token)
	if convErr == nil {
		rec, err := l.Get(id)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Record: rec}, nil
	}
	// Not a subcommand, alias, or id: surface the alias miss.
	_, err := l.GetByAlias(token)
	return Resolution{}, err
}
