package commands

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/tablescan/internal/report"
	"github.com/leapstack-labs/tablescan/internal/source"
	"github.com/leapstack-labs/tablescan/pkg/extract"
)

// ExtractOptions holds options for the extract command.
type ExtractOptions struct {
	Expr  string // Inline SQL instead of files
	Merge bool   // Fold all files into one report
}

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	opts := &ExtractOptions{}
	cmd := &cobra.Command{
		Use:   "extract [files...]",
		Short: "Extract table references from SQL files or scripts",
		Long: `Extract table references from the given files, grouped by clause.

Files with a .sql, .ddl, .dml, or .hql extension are read as SQL;
anything else is treated as a host-language script with embedded SQL.
Use --mode to force one interpretation. With no files and no --expr,
input is read from stdin.`,
		Example: `  # Extract from files
  tablescan extract queries/report.sql etl/pipeline.py

  # Extract from an inline expression
  tablescan extract -e "SELECT * FROM users JOIN orders"

  # Extract from stdin, as JSON
  cat dump.sql | tablescan extract -o json

  # Union of a whole directory's worth of files
  tablescan extract --merge models/*.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Expr, "expr", "e", "", "Extract from an inline SQL expression")
	cmd.Flags().BoolVar(&opts.Merge, "merge", false, "Merge all inputs into a single report")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string, opts *ExtractOptions) error {
	cmdCtx := NewCommandContext(cmd)

	if opts.Expr != "" {
		if len(args) > 0 {
			return fmt.Errorf("--expr cannot be combined with file arguments")
		}
		rep := extractInput(cmdCtx.Cfg.MaxDepth, &source.Input{
			Path: "<expr>",
			Text: opts.Expr,
			Mode: forcedMode(cmdCtx.Cfg.Mode, source.ModeSQL),
		})
		return cmdCtx.Renderer.Render(rep)
	}

	if len(args) == 0 {
		in, err := source.FromReader(cmd.InOrStdin(), "<stdin>", forcedMode(cmdCtx.Cfg.Mode, source.ModeSQL))
		if err != nil {
			return err
		}
		return cmdCtx.Renderer.Render(extractInput(cmdCtx.Cfg.MaxDepth, in))
	}

	reports, extractErr := extractFiles(cmdCtx, args)
	if len(reports) > 0 {
		if opts.Merge {
			merged := reports[0]
			merged.Source = fmt.Sprintf("%d files", len(reports))
			for _, rep := range reports[1:] {
				merged.Merge(rep)
			}
			reports = []*report.Report{merged}
		}
		if err := cmdCtx.Renderer.RenderAll(reports); err != nil {
			return err
		}
		if path := cmdCtx.Cfg.Report; path != "" {
			if err := report.WriteReport(path, reports...); err != nil {
				return err
			}
		}
	}
	return extractErr
}

// extractFiles loads and extracts the given paths concurrently,
// preserving argument order in the result. An unreadable file drops
// only that file's report; its error is returned after the rest have
// been processed.
func extractFiles(cmdCtx *CommandContext, paths []string) ([]*report.Report, error) {
	jobs := cmdCtx.Cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	reports := make([]*report.Report, len(paths))
	errs := make([]error, len(paths))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			in, err := source.Load(path)
			if err != nil {
				errs[i] = err
				return nil
			}
			in.Mode = forcedMode(cmdCtx.Cfg.Mode, in.Mode)
			cmdCtx.Logger.Debug("extracting", "path", path, "mode", in.Mode)
			reports[i] = extractInput(cmdCtx.Cfg.MaxDepth, in)
			return nil
		})
	}
	_ = g.Wait()

	out := reports[:0]
	for _, rep := range reports {
		if rep != nil {
			out = append(out, rep)
		}
	}
	return out, errors.Join(errs...)
}

// forcedMode applies a configured mode override, falling back to the
// detected mode when the config says auto.
func forcedMode(configured string, detected source.Mode) source.Mode {
	mode, auto, err := source.ParseMode(configured)
	if err != nil || auto {
		return detected
	}
	return mode
}

func extractInput(maxDepth int, in *source.Input) *report.Report {
	result := extract.Extract(in.Text, extract.Options{
		HostScript: in.Mode == source.ModeScript,
		MaxDepth:   maxDepth,
	})
	return report.New(in.Path, in.Mode.String(), result)
}
