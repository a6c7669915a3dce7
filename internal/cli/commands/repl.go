package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablescan/internal/report"
	"github.com/leapstack-labs/tablescan/internal/source"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively extract tables from pasted SQL",
		Long: `Start an interactive session. Paste SQL terminated by a semicolon
and the referenced tables are reported immediately. Type .help for
the available dot-commands.`,
		RunE: runRepl,
	}
}

// replSession carries the mutable REPL state across lines.
type replSession struct {
	cmdCtx *CommandContext
	mode   source.Mode
	out    io.Writer
	errOut io.Writer
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)

	sess := &replSession{
		cmdCtx: cmdCtx,
		mode:   forcedMode(cmdCtx.Cfg.Mode, source.ModeSQL),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}

	// History lives next to the user's other dotfiles.
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".tablescan_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "tablescan> ",
		HistoryFile:     historyFile,
		AutoComplete:    newDotCommandCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(sess.out, "tablescan REPL")
	_, _ = fmt.Fprintln(sess.out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(sess.out)

	// REPL loop
	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			rl.SetPrompt("tablescan> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Handle dot-commands
		if buffer.Len() == 0 && strings.HasPrefix(line, ".") {
			if quit := sess.handleDotCommand(line); quit {
				break
			}
			continue
		}

		// Accumulate multi-line SQL until semicolon
		buffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buffer.WriteString("\n")
			rl.SetPrompt("      ...> ")
			continue
		}
		rl.SetPrompt("tablescan> ")

		text := buffer.String()
		buffer.Reset()
		sess.extractAndRender("<repl>", text)
	}

	return nil
}

// handleDotCommand executes one dot-command, reporting whether the
// session should end.
func (s *replSession) handleDotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		s.printHelp()

	case ".mode":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(s.out, "mode: %s\n", s.mode)
			return false
		}
		mode, auto, err := source.ParseMode(parts[1])
		if err != nil || auto {
			_, _ = fmt.Fprintf(s.errOut, "Error: unknown mode %q (want sql or script)\n", parts[1])
			return false
		}
		s.mode = mode
		_, _ = fmt.Fprintf(s.out, "mode set to %s\n", mode)

	case ".output":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(s.out, "output: %s\n", s.cmdCtx.Renderer.Mode())
			return false
		}
		mode, err := report.ParseMode(parts[1])
		if err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
			return false
		}
		s.cmdCtx.Renderer = report.NewRenderer(s.out, s.errOut, mode)
		_, _ = fmt.Fprintf(s.out, "output set to %s\n", s.cmdCtx.Renderer.Mode())

	case ".load":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(s.errOut, "Error: .load needs a file path")
			return false
		}
		in, err := source.Load(parts[1])
		if err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
			return false
		}
		s.renderInput(in)

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command %s (try .help)\n", command)
	}
	return false
}

func (s *replSession) extractAndRender(name, text string) {
	s.renderInput(&source.Input{Path: name, Text: text, Mode: s.mode})
}

func (s *replSession) renderInput(in *source.Input) {
	rep := extractInput(s.cmdCtx.Cfg.MaxDepth, in)
	if err := s.cmdCtx.Renderer.Render(rep); err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
	_, _ = fmt.Fprintln(s.out)
}

func (s *replSession) printHelp() {
	help := `Dot-commands:
  .help             Show this help
  .mode [sql|script]   Show or set the input mode
  .output [format]  Show or set the output format
  .load <file>      Extract tables from a file
  .quit             Exit the REPL

Anything else is buffered as SQL and extracted once a line ends
with a semicolon.`
	_, _ = fmt.Fprintln(s.out, help)
}

func newDotCommandCompleter() readline.AutoCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".mode",
			readline.PcItem("sql"),
			readline.PcItem("script"),
		),
		readline.PcItem(".output",
			readline.PcItem("text"),
			readline.PcItem("json"),
			readline.PcItem("yaml"),
			readline.PcItem("markdown"),
		),
		readline.PcItem(".load"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
