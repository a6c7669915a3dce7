package extract

// DefaultMaxDepth is the parenthesis nesting bound applied when
// Options.MaxDepth is zero. Real SQL rarely nests beyond a handful of
// levels; anything past this is treated as malformed rather than scanned
// unboundedly.
const DefaultMaxDepth = 200

// Span is a half-open [Start, End) byte range in the cleaned text.
type Span struct {
	Start int
	End   int
}

// matchingParen returns the index (into toks) of the TOKEN_RPAREN that
// closes the TOKEN_LPAREN at open. Quote-awareness comes for free:
// parentheses inside string literals were consumed by the lexer as part
// of TOKEN_STRING and never appear as delimiter tokens.
//
// Returns a MalformedInputError wrapping ErrDepthExceeded when nesting
// passes maxDepth, or wrapping ErrUnbalanced when the input ends first.
// In both cases the returned index is the last token examined, so
// callers can truncate the construct and resume after it.
func matchingParen(toks []Token, open, maxDepth int) (int, error) {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].Type {
		case TOKEN_LPAREN:
			depth++
			if depth > maxDepth {
				return i, &MalformedInputError{
					Pos:     toks[i].Pos,
					Message: "parenthesis nesting exceeds safety bound",
					Err:     ErrDepthExceeded,
				}
			}
		case TOKEN_RPAREN:
			depth--
			if depth == 0 {
				return i, nil
			}
		case TOKEN_EOF:
			return i, &MalformedInputError{
				Pos:     toks[open].Pos,
				Message: "no matching closing parenthesis",
				Err:     ErrUnbalanced,
			}
		}
	}
	last := len(toks) - 1
	if last < open {
		last = open
	}
	return last, &MalformedInputError{
		Pos:     toks[open].Pos,
		Message: "no matching closing parenthesis",
		Err:     ErrUnbalanced,
	}
}
