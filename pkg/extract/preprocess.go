package extract

import (
	"regexp"
	"strings"
)

// Host-language noise patterns, compiled once. These are line-prefix
// heuristics: a '#' or import statement inside a quoted SQL literal that
// happens to start a line can be lost. That is the accepted best-effort
// contract for script files.
var (
	shebangPattern     = regexp.MustCompile(`(?m)^#![^\n]*`)
	importPattern      = regexp.MustCompile(`(?m)^[ \t]*import[ \t]+[^\n]+`)
	fromImportPattern  = regexp.MustCompile(`(?m)^[ \t]*from[ \t]+[a-zA-Z_][a-zA-Z0-9_.]*[ \t]+import[ \t]+[^\n]+`)
	hashCommentPattern = regexp.MustCompile(`(?m)^[ \t]*#[^\n]*`)
	codingDeclPattern  = regexp.MustCompile(`(?m)^#.*coding[=:][ \t]*[^\n]+`)
)

// Clean strips SQL comments from text. When hostScript is true it first
// removes host-language constructs that would otherwise be misread as
// SQL tokens: shebang lines, Python import statements, coding
// declarations, and '#' comment lines.
//
// Clean is pure and idempotent: Clean(Clean(x, h), h) == Clean(x, h).
func Clean(text string, hostScript bool) string {
	if hostScript {
		text = stripHostNoise(text)
	}
	return stripSQLComments(text)
}

// stripHostNoise removes non-SQL host-language lines.
func stripHostNoise(text string) string {
	text = shebangPattern.ReplaceAllString(text, "")
	text = codingDeclPattern.ReplaceAllString(text, "")
	text = fromImportPattern.ReplaceAllString(text, "")
	text = importPattern.ReplaceAllString(text, "")
	text = hashCommentPattern.ReplaceAllString(text, "")
	return text
}

// stripSQLComments removes '--' line comments and '/* */' block
// comments. The scan does not track string literals: a '--' inside a
// quoted literal is treated as a comment start, matching the documented
// best-effort behavior. A block comment is replaced by a single space so
// adjacent tokens stay separated; an unterminated block comment is
// stripped to end of input.
func stripSQLComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	i := 0
	for i < len(s) {
		if s[i] == '-' && i+1 < len(s) && s[i+1] == '-' {
			// Line comment: skip to end of line, keep the newline.
			for i < len(s) && s[i] != '\n' {
				i++
			}
			continue
		}
		if s[i] == '/' && i+1 < len(s) && s[i+1] == '*' {
			i += 2
			for i < len(s) {
				if s[i] == '*' && i+1 < len(s) && s[i+1] == '/' {
					i += 2
					break
				}
				i++
			}
			b.WriteByte(' ')
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}
