package extract

// Options configures one extraction call.
type Options struct {
	// HostScript engages the preprocessor's host-language stripping,
	// for script files containing embedded SQL rather than pure SQL.
	HostScript bool
	// MaxDepth bounds parenthesis nesting during balanced-delimiter
	// scans. Zero means DefaultMaxDepth.
	MaxDepth int
}

// ExtractionResult is the structured output of one extraction call.
// It is constructed once and not mutated afterwards; concurrent callers
// each get their own.
type ExtractionResult struct {
	// Categories maps each clause category to the names found under it.
	// The same name may legitimately appear under several categories.
	Categories CategoryMap
	// CTETables holds the WITH-declared names, insertion-ordered.
	// Informational: never merged into AllTables.
	CTETables *IdentifierSet
	// AllTables is the union of all category sets minus CTETables,
	// case-insensitive, preserving the first-seen spelling and order.
	AllTables *IdentifierSet
	// Warnings records constructs whose scan was truncated (unbalanced
	// parentheses, nesting past the depth bound). A non-empty list means
	// the result is partial, not that the call failed.
	Warnings []string
}

// Extract runs the full pipeline over text: preprocess, resolve CTEs,
// classify clause references, aggregate. It never fails; malformed
// constructs degrade to a partial result with Warnings set.
func Extract(text string, opts Options) *ExtractionResult {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	cleaned := Clean(text, opts.HostScript)
	var toks []Token
	if opts.HostScript {
		toks = TokenizeScript(cleaned)
	} else {
		toks = Tokenize(cleaned)
	}

	ctes, warnings := extractCTEs(toks, maxDepth)
	categories := classify(toks)

	return aggregate(categories, ctes, warnings)
}

// ExtractSQL extracts from pure SQL text with default options.
func ExtractSQL(text string) *ExtractionResult {
	return Extract(text, Options{})
}

// ExtractScript extracts from host-script text (shell, Python, ...)
// with default options.
func ExtractScript(text string) *ExtractionResult {
	return Extract(text, Options{HostScript: true})
}

// aggregate unions the category results, removes CTE names by
// case-insensitive identifier equality, and assembles the final result.
// Union order follows the fixed category order, then each category's
// first-seen order, so AllTables is deterministic for a given input.
func aggregate(categories CategoryMap, ctes *CTESet, warnings []string) *ExtractionResult {
	all := NewIdentifierSet()
	for _, cat := range Categories {
		for _, name := range categories[cat].Names() {
			if ctes.Names.Contains(name) {
				continue
			}
			all.Add(name)
		}
	}

	return &ExtractionResult{
		Categories: categories,
		CTETables:  ctes.Names,
		AllTables:  all,
		Warnings:   warnings,
	}
}

// Category returns the identifier set for cat, never nil.
func (r *ExtractionResult) Category(cat Category) *IdentifierSet {
	if set, ok := r.Categories[cat]; ok {
		return set
	}
	return NewIdentifierSet()
}

// TotalReferences returns the number of distinct names recorded across
// all categories, before CTE exclusion.
func (r *ExtractionResult) TotalReferences() int {
	seen := NewIdentifierSet()
	for _, cat := range Categories {
		for _, name := range r.Categories[cat].Names() {
			seen.Add(name)
		}
	}
	return seen.Len()
}
