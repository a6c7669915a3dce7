// Package config provides configuration management for the tablescan CLI.
//
// Settings come from four layers, lowest to highest precedence:
// built-in defaults, a tablescan.yaml file, TABLESCAN_* environment
// variables, and command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	Mode         string       `koanf:"mode"`   // auto, sql, script
	OutputFormat string       `koanf:"output"` // auto, text, json, yaml, markdown
	Verbose      bool         `koanf:"verbose"`
	Report       string       `koanf:"report"` // write a text report to this path as well
	MaxDepth     int          `koanf:"max_depth"` // parenthesis nesting bound
	Jobs         int          `koanf:"jobs"`      // parallel file workers, 0 = NumCPU
	Watch        *WatchConfig `koanf:"watch"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	DebounceMs int      `koanf:"debounce_ms"`
	Extensions []string `koanf:"extensions"` // re-extract only these, empty = all
}

// Default configuration values.
const (
	DefaultMode       = "auto"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultDebounceMs = 250
)

// GetWatchConfig returns the watch config with defaults applied for
// any unset values.
func (c *Config) GetWatchConfig() *WatchConfig {
	w := c.Watch
	if w == nil {
		w = &WatchConfig{}
	}
	if w.DebounceMs <= 0 {
		w.DebounceMs = DefaultDebounceMs
	}
	return w
}
