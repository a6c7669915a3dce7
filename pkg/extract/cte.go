package extract

// CTESet is the ordered, case-insensitively deduplicated set of CTE
// names declared via WITH / WITH RECURSIVE, plus the spans of their
// parenthesized bodies in the cleaned text. Body spans are informational:
// the classifiers scan the whole cleaned text, so table references
// inside CTE bodies surface normally and CTE names are excluded later at
// aggregation, never by textual removal.
type CTESet struct {
	Names *IdentifierSet
	Spans []Span
}

// extractCTEs scans the token stream for WITH [RECURSIVE] groups and
// collects every `name AS ( ... )` definition, following depth-0 comma
// continuations. Every WITH in the stream starts a group, including one
// nested inside another CTE's body, so inner declarations are excluded
// from the real-table result too.
func extractCTEs(toks []Token, maxDepth int) (*CTESet, []string) {
	set := &CTESet{Names: NewIdentifierSet()}
	var warnings []string

	for i := 0; i < len(toks); i++ {
		if toks[i].Type != TOKEN_WITH {
			continue
		}
		warnings = append(warnings, captureWithGroup(toks, i+1, maxDepth, set)...)
	}

	return set, warnings
}

// captureWithGroup captures the comma-separated CTE definitions that
// follow a WITH keyword at toks[start-1]. Each body boundary is found
// with a balanced-delimiter scan; a body whose scan fails (unbalanced or
// past the depth bound) truncates the group there and is reported as a
// warning.
func captureWithGroup(toks []Token, start, maxDepth int, set *CTESet) []string {
	var warnings []string

	i := start
	if i < len(toks) && toks[i].Type == TOKEN_RECURSIVE {
		i++
	}

	for {
		name, next, ok := consumeIdentifier(toks, i)
		if !ok || !ValidIdentifier(name) {
			break
		}
		// AS must immediately precede the body; anything else means
		// this WITH did not open a CTE group.
		if next >= len(toks) || toks[next].Type != TOKEN_AS {
			break
		}
		next++
		if next >= len(toks) || toks[next].Type != TOKEN_LPAREN {
			break
		}

		closing, err := matchingParen(toks, next, maxDepth)
		if err != nil {
			warnings = append(warnings, err.Error())
			set.Names.Add(name)
			break
		}

		set.Names.Add(name)
		set.Spans = append(set.Spans, Span{
			Start: toks[next].Pos.Offset + 1,
			End:   toks[closing].Pos.Offset,
		})

		i = closing + 1
		if i < len(toks) && toks[i].Type == TOKEN_COMMA {
			i++
			continue
		}
		break
	}

	return warnings
}
