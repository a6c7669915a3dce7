package commands

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablescan/internal/cli/config"
	"github.com/leapstack-labs/tablescan/internal/report"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *report.Renderer
}

// NewCommandContext assembles command dependencies from the loaded
// configuration and the command's streams.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	mode, err := report.ParseMode(cfg.OutputFormat)
	if err != nil {
		mode = report.ModeAuto
	}
	r := report.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back
// to environment variables. The fallback keeps commands usable when
// invoked outside the root command's PersistentPreRunE (tests mostly).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	maxDepth, _ := strconv.Atoi(os.Getenv("TABLESCAN_MAX_DEPTH"))
	return &config.Config{
		Mode:         getEnvOrDefault("TABLESCAN_MODE", config.DefaultMode),
		OutputFormat: getEnvOrDefault("TABLESCAN_OUTPUT", config.DefaultOutput),
		Verbose:      os.Getenv("TABLESCAN_VERBOSE") == "true",
		MaxDepth:     maxDepth,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
