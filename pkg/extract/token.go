package extract

import "fmt"

// TokenType represents the type of a lexical token.
type TokenType int

//nolint:revive // TOKEN_* names are intentionally ALL_CAPS for SQL token conventions
const (
	// TOKEN_EOF represents end of input.
	TOKEN_EOF TokenType = iota
	// TOKEN_ILLEGAL represents an unrecognized character.
	TOKEN_ILLEGAL

	// TOKEN_IDENT represents an identifier (bare, double-quoted, or backtick-quoted).
	TOKEN_IDENT
	// TOKEN_NUMBER represents a numeric literal.
	TOKEN_NUMBER // 123, 45.67, 1e10
	// TOKEN_STRING represents a single-quoted string literal.
	TOKEN_STRING // 'hello'
	// TOKEN_KEYWORD represents a reserved word the extraction engine does
	// not dispatch on but must never accept as a table name.
	TOKEN_KEYWORD

	TOKEN_DOT    // .
	TOKEN_COMMA  // ,
	TOKEN_LPAREN // (
	TOKEN_RPAREN // )
	TOKEN_SEMI   // ;
	TOKEN_OP     // any other operator/punctuation

	// Keywords the classifiers dispatch on (alphabetical).
	TOKEN_ALTER
	TOKEN_AS
	TOKEN_CREATE
	TOKEN_CROSS
	TOKEN_DELETE
	TOKEN_DROP
	TOKEN_EXISTS
	TOKEN_EXTERNAL
	TOKEN_FROM
	TOKEN_FULL
	TOKEN_IF
	TOKEN_INNER
	TOKEN_INSERT
	TOKEN_INTO
	TOKEN_JOIN
	TOKEN_LEFT
	TOKEN_NOT
	TOKEN_OUTER
	TOKEN_OVERWRITE
	TOKEN_RECURSIVE
	TOKEN_RIGHT
	TOKEN_TABLE
	TOKEN_TRUNCATE
	TOKEN_UPDATE
	TOKEN_WITH
)

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Quoted  bool // identifier was backtick- or double-quote-delimited
	Pos     Position
}

// Position represents a location in the scanned text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	TOKEN_EOF:     "EOF",
	TOKEN_ILLEGAL: "ILLEGAL",

	TOKEN_IDENT:   "IDENT",
	TOKEN_NUMBER:  "NUMBER",
	TOKEN_STRING:  "STRING",
	TOKEN_KEYWORD: "KEYWORD",

	TOKEN_DOT:    ".",
	TOKEN_COMMA:  ",",
	TOKEN_LPAREN: "(",
	TOKEN_RPAREN: ")",
	TOKEN_SEMI:   ";",
	TOKEN_OP:     "OP",

	TOKEN_ALTER:     "ALTER",
	TOKEN_AS:        "AS",
	TOKEN_CREATE:    "CREATE",
	TOKEN_CROSS:     "CROSS",
	TOKEN_DELETE:    "DELETE",
	TOKEN_DROP:      "DROP",
	TOKEN_EXISTS:    "EXISTS",
	TOKEN_EXTERNAL:  "EXTERNAL",
	TOKEN_FROM:      "FROM",
	TOKEN_FULL:      "FULL",
	TOKEN_IF:        "IF",
	TOKEN_INNER:     "INNER",
	TOKEN_INSERT:    "INSERT",
	TOKEN_INTO:      "INTO",
	TOKEN_JOIN:      "JOIN",
	TOKEN_LEFT:      "LEFT",
	TOKEN_NOT:       "NOT",
	TOKEN_OUTER:     "OUTER",
	TOKEN_OVERWRITE: "OVERWRITE",
	TOKEN_RECURSIVE: "RECURSIVE",
	TOKEN_RIGHT:     "RIGHT",
	TOKEN_TABLE:     "TABLE",
	TOKEN_TRUNCATE:  "TRUNCATE",
	TOKEN_UPDATE:    "UPDATE",
	TOKEN_WITH:      "WITH",
}

// keywords maps lowercase keyword strings to the token types the
// classifiers dispatch on.
var keywords = map[string]TokenType{
	"alter":     TOKEN_ALTER,
	"as":        TOKEN_AS,
	"create":    TOKEN_CREATE,
	"cross":     TOKEN_CROSS,
	"delete":    TOKEN_DELETE,
	"drop":      TOKEN_DROP,
	"exists":    TOKEN_EXISTS,
	"external":  TOKEN_EXTERNAL,
	"from":      TOKEN_FROM,
	"full":      TOKEN_FULL,
	"if":        TOKEN_IF,
	"inner":     TOKEN_INNER,
	"insert":    TOKEN_INSERT,
	"into":      TOKEN_INTO,
	"join":      TOKEN_JOIN,
	"left":      TOKEN_LEFT,
	"not":       TOKEN_NOT,
	"outer":     TOKEN_OUTER,
	"overwrite": TOKEN_OVERWRITE,
	"recursive": TOKEN_RECURSIVE,
	"right":     TOKEN_RIGHT,
	"table":     TOKEN_TABLE,
	"truncate":  TOKEN_TRUNCATE,
	"update":    TOKEN_UPDATE,
	"with":      TOKEN_WITH,
}

// reservedWords is the denylist of SQL reserved words that are never
// accepted as table names. Covers ANSI core plus the Hive-style dialect
// words (PARTITION, LOCATION, STORED, ...) that routinely follow the
// clauses we scan.
var reservedWords = map[string]struct{}{
	"all": {}, "and": {}, "any": {}, "asc": {}, "auto_increment": {},
	"between": {}, "by": {}, "cascade": {}, "case": {}, "check": {},
	"constraint": {}, "database": {}, "default": {}, "desc": {},
	"distinct": {}, "else": {}, "end": {}, "except": {}, "false": {},
	"foreign": {}, "group": {}, "having": {}, "in": {}, "index": {},
	"intersect": {}, "is": {}, "key": {}, "lateral": {}, "like": {},
	"limit": {}, "location": {}, "null": {}, "offset": {}, "on": {},
	"or": {}, "order": {}, "partition": {}, "primary": {},
	"references": {}, "schema": {}, "select": {}, "set": {}, "some": {},
	"stored": {}, "then": {}, "true": {}, "union": {}, "unique": {},
	"values": {}, "view": {}, "when": {}, "where": {},
}

// LookupIdent returns the token type for the given identifier. Clause
// keywords and denylisted reserved words get their own types; anything
// else is TOKEN_IDENT. The argument must already be lowercased.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if _, ok := reservedWords[ident]; ok {
		return TOKEN_KEYWORD
	}
	return TOKEN_IDENT
}

// IsReservedWord reports whether word (any case) is on the reserved-word
// denylist or is one of the clause keywords.
func IsReservedWord(word string) bool {
	return LookupIdent(lower(word)) != TOKEN_IDENT
}

// lower is an ASCII-only strings.ToLower. SQL keywords are ASCII, and
// identifiers containing non-ASCII bytes pass through unchanged.
func lower(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b[i] = c
	}
	return string(b)
}
