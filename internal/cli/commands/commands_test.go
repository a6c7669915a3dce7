// Package commands tests for CLI command creation and wiring.
package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewExtractCommand(t *testing.T) {
	cmd := NewExtractCommand()

	assert.Equal(t, "extract [files...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"expr", "merge"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewReplCommand(t *testing.T) {
	cmd := NewReplCommand()

	assert.Equal(t, "repl", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewWatchCommand(t *testing.T) {
	cmd := NewWatchCommand()

	assert.Equal(t, "watch [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestWatchable(t *testing.T) {
	tests := []struct {
		name       string
		extensions []string
		path       string
		want       bool
	}{
		{"no filter accepts sql", nil, "models/users.sql", true},
		{"no filter accepts scripts", nil, "etl/job.py", true},
		{"hidden file rejected", nil, "models/.users.sql.swp", false},
		{"editor backup rejected", nil, "models/users.sql~", false},
		{"filter match", []string{".sql"}, "models/users.sql", true},
		{"filter match without dot", []string{"sql"}, "models/users.sql", true},
		{"filter mismatch", []string{".sql"}, "etl/job.py", false},
		{"filter case-insensitive", []string{".sql"}, "models/USERS.SQL", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, watchable(tt.extensions, tt.path))
		})
	}
}

func TestForcedMode(t *testing.T) {
	// auto defers to detection, explicit settings win
	assert.Equal(t, "script", forcedMode("auto", mustDetect("job.py")).String())
	assert.Equal(t, "sql", forcedMode("auto", mustDetect("q.sql")).String())
	assert.Equal(t, "script", forcedMode("script", mustDetect("q.sql")).String())
	assert.Equal(t, "sql", forcedMode("sql", mustDetect("job.py")).String())
}
