// Package config handles data-home resolution and policy configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policy holds behavioral knobs that are deliberately configurable rather
// than hard-coded.
type Policy struct {
	// CountInitialRun controls whether the creation-time execution of an
	// add-and-execute request counts towards usage_count.
	CountInitialRun bool `yaml:"count_initial_run"`
	// HistoryLines is the default number of history lines scanned by import.
	HistoryLines int `yaml:"history_lines"`
}

// Config is the per-home configuration. SeeHome is only meaningful in the
// config file at the default home, where it redirects the data home.
type Config struct {
	SeeHome string `yaml:"see_home"`
	Policy  Policy `yaml:"policy"`
}

// Default returns a Config populated with the default policy.
func Default() *Config {
	return &Config{
		Policy: Policy{
			CountInitialRun: false,
			HistoryLines:    50,
		},
	}
}

// Load reads config.yaml from path. If the file does not exist it returns
// Default() with no error. Missing keys retain their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	// Unmarshal into a plain map so we can apply only the keys that are present.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if v, ok := raw["see_home"].(string); ok {
		cfg.SeeHome = v
	}
	if pol, ok := raw["policy"].(map[string]any); ok {
		if v, ok := pol["count_initial_run"].(bool); ok {
			cfg.Policy.CountInitialRun = v
		}
		if v, ok := pol["history_lines"].(int); ok && v > 0 {
			cfg.Policy.HistoryLines = v
		}
	}

	return cfg, nil
}

// ---------------------------------------------------------------------------
// Data home resolution
// ---------------------------------------------------------------------------

// normalizePath expands ~ and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ResolveDataHome returns the data home path and the source of the
// resolution. Priority: SEE_HOME env, then a see_home key persisted in the
// default home's config.yaml, then ~/.config/see itself.
// source is "env", "config", or "default".
func ResolveDataHome() (path, source string) {
	if env := os.Getenv("SEE_HOME"); env != "" {
		p, err := normalizePath(env)
		if err == nil {
			return p, "env"
		}
	}
	home, _ := os.UserHomeDir()
	def := filepath.Join(home, ".config", "see")
	if cfg, err := Load(filepath.Join(def, "config.yaml")); err == nil && cfg.SeeHome != "" {
		if p, err := normalizePath(cfg.SeeHome); err == nil {
			return p, "config"
		}
	}
	return def, "default"
}

// GetDataHome returns the resolved data home path.
func GetDataHome() string {
	path, _ := ResolveDataHome()
	return path
}
