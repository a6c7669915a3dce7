package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablescan/internal/source"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-extract tables whenever watched files change",
		Long: `Watch the given files or directories and re-run extraction on every
change. Results are printed as files are written. Without arguments
the current directory is watched. Stop with Ctrl-C.`,
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	if len(args) == 0 {
		args = []string{"."}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, path := range args {
		if err := watchPath(watcher, path); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes...\n", strings.Join(args, ", "))
	watchLoop(ctx, cmdCtx, watcher)
	return nil
}

// watchPath registers a file or directory, descending one level into
// subdirectories so model layouts like models/staging/ are covered.
func watchPath(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}
	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			if err := watcher.Add(filepath.Join(path, entry.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// watchLoop handles file system events until the context ends.
func watchLoop(ctx context.Context, cmdCtx *CommandContext, watcher *fsnotify.Watcher) {
	watchCfg := cmdCtx.Cfg.GetWatchConfig()
	debounce := time.Duration(watchCfg.DebounceMs) * time.Millisecond

	// Debounce timer, one per changed path
	timers := make(map[string]*time.Timer)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Only handle write/create events for relevant files
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !watchable(watchCfg.Extensions, event.Name) {
				continue
			}

			path := event.Name
			if t, ok := timers[path]; ok {
				t.Stop()
			}
			timers[path] = time.AfterFunc(debounce, func() {
				extractChanged(cmdCtx, path)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			cmdCtx.Logger.Warn("watch error", "error", err)
		}
	}
}

// watchable filters events by the configured extension list. An empty
// list accepts every file that is not hidden.
func watchable(extensions []string, path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range extensions {
		if ext == "."+strings.ToLower(strings.TrimPrefix(allowed, ".")) {
			return true
		}
	}
	return false
}

func extractChanged(cmdCtx *CommandContext, path string) {
	in, err := source.Load(path)
	if err != nil {
		cmdCtx.Logger.Warn("skipping changed file", "path", path, "error", err)
		return
	}
	in.Mode = forcedMode(cmdCtx.Cfg.Mode, in.Mode)
	if err := cmdCtx.Renderer.Render(extractInput(cmdCtx.Cfg.MaxDepth, in)); err != nil {
		cmdCtx.Logger.Warn("render failed", "path", path, "error", err)
	}
}
