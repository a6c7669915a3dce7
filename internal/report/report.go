// Package report turns extraction results into CLI output.
package report

import (
	"sort"

	"github.com/leapstack-labs/tablescan/pkg/extract"
)

// Report is the serializable view of one extraction run.
type Report struct {
	Source    string              `json:"source" yaml:"source"`
	Mode      string              `json:"mode" yaml:"mode"`
	Tables    map[string][]string `json:"tables" yaml:"tables"`
	CTETables []string            `json:"cte_tables" yaml:"cte_tables"`
	AllTables []string            `json:"all_tables" yaml:"all_tables"`
	Warnings  []string            `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// New builds a Report from an extraction result. Category lists keep
// first-seen order; empty categories are omitted.
func New(source, mode string, result *extract.ExtractionResult) *Report {
	r := &Report{
		Source:    source,
		Mode:      mode,
		Tables:    make(map[string][]string),
		CTETables: result.CTETables.Names(),
		AllTables: result.AllTables.Names(),
		Warnings:  result.Warnings,
	}
	for _, cat := range extract.Categories {
		if set := result.Category(cat); set.Len() > 0 {
			r.Tables[string(cat)] = set.Names()
		}
	}
	return r
}

// Merge folds another report's tables into this one, de-duplicating
// by case-insensitive name. Used when a run covers several files.
func (r *Report) Merge(other *Report) {
	for cat, names := range other.Tables {
		r.Tables[cat] = mergeNames(r.Tables[cat], names)
	}
	r.CTETables = mergeNames(r.CTETables, other.CTETables)
	r.AllTables = mergeNames(r.AllTables, other.AllTables)
	r.Warnings = append(r.Warnings, other.Warnings...)
	// CTEs resolved in any file stay excluded from the union.
	r.AllTables = subtractNames(r.AllTables, r.CTETables)
}

// Categories lists the report's non-empty categories in canonical order.
func (r *Report) Categories() []string {
	out := make([]string, 0, len(r.Tables))
	for _, cat := range extract.Categories {
		if len(r.Tables[string(cat)]) > 0 {
			out = append(out, string(cat))
		}
	}
	return out
}

// Total counts distinct tables across all categories.
func (r *Report) Total() int {
	return len(r.AllTables)
}

func mergeNames(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, name := range dst {
		seen[extract.Fold(name)] = true
	}
	for _, name := range src {
		if key := extract.Fold(name); !seen[key] {
			seen[key] = true
			dst = append(dst, name)
		}
	}
	return dst
}

func subtractNames(names, drop []string) []string {
	if len(drop) == 0 {
		return names
	}
	excluded := make(map[string]bool, len(drop))
	for _, name := range drop {
		excluded[extract.Fold(name)] = true
	}
	out := names[:0]
	for _, name := range names {
		if !excluded[extract.Fold(name)] {
			out = append(out, name)
		}
	}
	return out
}

// SortedCopy returns names sorted case-insensitively, leaving the
// original first-seen ordering intact.
func SortedCopy(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Slice(out, func(i, j int) bool {
		return extract.Fold(out[i]) < extract.Fold(out[j])
	})
	return out
}
