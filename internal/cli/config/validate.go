package config

import "fmt"

var validModes = map[string]bool{
	"auto":   true,
	"sql":    true,
	"script": true,
}

var validOutputs = map[string]bool{
	"auto":     true,
	"text":     true,
	"json":     true,
	"yaml":     true,
	"markdown": true,
	"md":       true,
}

// Validate checks the loaded configuration for values that would
// fail later in surprising places.
func (c *Config) Validate() error {
	if !validModes[c.Mode] {
		return fmt.Errorf("invalid mode %q (want auto, sql, or script)", c.Mode)
	}
	if !validOutputs[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q (want auto, text, json, yaml, or markdown)", c.OutputFormat)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be zero or positive, got %d", c.Jobs)
	}
	if c.Watch != nil && c.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must be zero or positive, got %d", c.Watch.DebounceMs)
	}
	return nil
}
