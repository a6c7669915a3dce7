package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Mode selects the output format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
	ModeMarkdown Mode = "markdown"
)

// ParseMode validates a --output flag value.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeText:
		return ModeText, nil
	case ModeJSON:
		return ModeJSON, nil
	case ModeYAML:
		return ModeYAML, nil
	case ModeMarkdown, "md":
		return ModeMarkdown, nil
	}
	return ModeAuto, fmt.Errorf("unknown output format %q (want auto, text, json, yaml, or markdown)", s)
}

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Title    lipgloss.Style
	Category lipgloss.Style
	Name     lipgloss.Style
	Warning  lipgloss.Style
	Muted    lipgloss.Style
}

func newStyles(colored bool) *Styles {
	if !colored {
		plain := lipgloss.NewStyle()
		return &Styles{Title: plain, Category: plain, Name: plain, Warning: plain, Muted: plain}
	}
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true),
		Category: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Name:     lipgloss.NewStyle(),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true),
	}
}

// Renderer writes reports in the configured mode. With ModeAuto it
// emits styled text on a terminal and markdown when piped.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer resolves ModeAuto against the destination and returns a
// ready renderer.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	tty := isTerminal(out)
	if mode == ModeAuto || mode == "" {
		if tty {
			mode = ModeText
		} else {
			mode = ModeMarkdown
		}
	}
	colored := tty && mode == ModeText && termenv.EnvColorProfile() != termenv.Ascii
	return &Renderer{out: out, errOut: errOut, mode: mode, styles: newStyles(colored)}
}

// Mode returns the resolved output mode.
func (r *Renderer) Mode() Mode { return r.mode }

// Styles exposes the active styles for commands that print directly.
func (r *Renderer) Styles() *Styles { return r.styles }

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Render writes one report in the renderer's mode.
func (r *Renderer) Render(rep *Report) error {
	switch r.mode {
	case ModeJSON:
		return r.renderJSON(rep)
	case ModeYAML:
		return r.renderYAML(rep)
	case ModeMarkdown:
		return r.renderTable(rep, true)
	default:
		return r.renderTable(rep, false)
	}
}

// RenderAll writes several reports. Structured modes emit a single
// document; table modes emit one section per report.
func (r *Renderer) RenderAll(reps []*Report) error {
	switch r.mode {
	case ModeJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(reps)
	case ModeYAML:
		enc := yaml.NewEncoder(r.out)
		if err := enc.Encode(reps); err != nil {
			return err
		}
		return enc.Close()
	default:
		for i, rep := range reps {
			if i > 0 {
				fmt.Fprintln(r.out)
			}
			if err := r.Render(rep); err != nil {
				return err
			}
		}
		return nil
	}
}

// Warn prints a warning line to stderr in table modes. Structured
// modes already carry warnings in the document, so it stays silent.
func (r *Renderer) Warn(format string, args ...any) {
	if r.mode == ModeJSON || r.mode == ModeYAML {
		return
	}
	fmt.Fprintln(r.errOut, r.styles.Warning.Render("warning: "+fmt.Sprintf(format, args...)))
}

func (r *Renderer) renderJSON(rep *Report) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func (r *Renderer) renderYAML(rep *Report) error {
	enc := yaml.NewEncoder(r.out)
	defer enc.Close()
	return enc.Encode(rep)
}

func (r *Renderer) renderTable(rep *Report, markdown bool) error {
	header := fmt.Sprintf("%s (%s)", rep.Source, rep.Mode)
	if markdown {
		fmt.Fprintf(r.out, "## %s\n\n", header)
	} else {
		fmt.Fprintln(r.out, r.styles.Title.Render(header))
	}

	if rep.Total() == 0 && len(rep.CTETables) == 0 {
		fmt.Fprintln(r.out, r.styles.Muted.Render("(no tables found)"))
		return r.printWarnings(rep)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	style := table.StyleLight
	style.Format.Footer = text.FormatDefault
	t.SetStyle(style)
	t.AppendHeader(table.Row{"Category", "Count", "Tables"})
	for _, cat := range rep.Categories() {
		names := rep.Tables[cat]
		t.AppendRow(table.Row{
			r.styles.Category.Render(cat),
			len(names),
			strings.Join(SortedCopy(names), ", "),
		})
	}
	if len(rep.CTETables) > 0 {
		t.AppendRow(table.Row{
			r.styles.Category.Render("cte_tables"),
			len(rep.CTETables),
			strings.Join(SortedCopy(rep.CTETables), ", "),
		})
	}
	t.AppendFooter(table.Row{"all_tables", len(rep.AllTables), strings.Join(rep.AllTables, ", ")})
	if markdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	fmt.Fprintln(r.out, r.styles.Muted.Render(fmt.Sprintf("(%d tables)", rep.Total())))
	return r.printWarnings(rep)
}

func (r *Renderer) printWarnings(rep *Report) error {
	for _, w := range rep.Warnings {
		fmt.Fprintln(r.errOut, r.styles.Warning.Render("warning: "+w))
	}
	return nil
}
