// Package shared holds the context passed to all CLI commands.
package shared

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// DataHome overrides the data directory.
	// When empty, resolution falls through to SEE_HOME env var → ~/.config/see.
	DataHome string
}
