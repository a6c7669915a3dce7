package extract

import (
	"regexp"
	"sort"
)

// bareIdentPattern validates an unquoted identifier segment.
var bareIdentPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name is acceptable as a table or CTE
// name: non-empty, not purely numeric, each dot-separated segment a
// valid identifier, and the final segment not a reserved word.
func ValidIdentifier(name string) bool {
	if name == "" {
		return false
	}
	last := name
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			last = name[i+1:]
			break
		}
	}
	if !bareIdentPattern.MatchString(last) {
		return false
	}
	return !IsReservedWord(last)
}

// Fold normalizes an identifier for case-insensitive comparison, using
// the same ASCII folding the lexer applies to keywords.
func Fold(name string) string {
	return lower(name)
}

// IdentifierSet is an ordered set of identifiers with case-insensitive
// membership. Insertion order is preserved for "first seen" views; the
// first spelling encountered wins.
type IdentifierSet struct {
	names []string
	index map[string]int // lowercased name -> position in names
}

// NewIdentifierSet returns an empty set.
func NewIdentifierSet() *IdentifierSet {
	return &IdentifierSet{index: make(map[string]int)}
}

// Add inserts name, reporting whether it was newly added.
func (s *IdentifierSet) Add(name string) bool {
	key := lower(name)
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = len(s.names)
	s.names = append(s.names, name)
	return true
}

// Contains reports case-insensitive membership.
func (s *IdentifierSet) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[lower(name)]
	return ok
}

// Len returns the number of members.
func (s *IdentifierSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns the members in insertion order.
func (s *IdentifierSet) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Sorted returns the members in alphabetical order.
func (s *IdentifierSet) Sorted() []string {
	out := s.Names()
	sort.Strings(out)
	return out
}

// consumeIdentifier reads a table identifier from toks starting at i:
// a quoted or bare segment, optionally dot-qualified by a second
// segment. Quoted segments arrive with delimiters already stripped by
// the lexer; bare reserved words never arrive at all, since the lexer
// tokenizes those as keyword types. Callers still run the result
// through ValidIdentifier before recording it.
//
// Returns the joined name and the index of the first unconsumed token,
// or ok=false when toks[i] does not begin an identifier.
func consumeIdentifier(toks []Token, i int) (name string, next int, ok bool) {
	if i >= len(toks) || toks[i].Type != TOKEN_IDENT {
		return "", i, false
	}
	name = toks[i].Literal
	next = i + 1

	// schema.table qualification
	if next+1 < len(toks) && toks[next].Type == TOKEN_DOT && toks[next+1].Type == TOKEN_IDENT {
		name = name + "." + toks[next+1].Literal
		next += 2
	}

	if name == "" {
		return "", i, false
	}
	return name, next, true
}
