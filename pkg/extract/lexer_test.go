package extract

import "testing"

func tokenTypes(toks []Token) []TokenType {
	types := make([]TokenType, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	return types
}

func TestLexer_Keywords(t *testing.T) {
	toks := Tokenize("select * from Users inner join orders")

	want := []TokenType{
		TOKEN_KEYWORD, // select
		TOKEN_OP,      // *
		TOKEN_FROM,
		TOKEN_IDENT, // Users
		TOKEN_INNER,
		TOKEN_JOIN,
		TOKEN_IDENT, // orders
		TOKEN_EOF,
	}
	got := tokenTypes(toks)
	if len(got) != len(want) {
		t.Fatalf("token count: got %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if toks[3].Literal != "Users" {
		t.Errorf("identifier case not preserved: %q", toks[3].Literal)
	}
}

func TestLexer_QuotedIdentifiers(t *testing.T) {
	toks := Tokenize("`db`.`users` \"order\" \"col\"\"name\"")

	if toks[0].Type != TOKEN_IDENT || toks[0].Literal != "db" || !toks[0].Quoted {
		t.Errorf("backtick identifier: %+v", toks[0])
	}
	if toks[1].Type != TOKEN_DOT {
		t.Errorf("expected dot, got %v", toks[1].Type)
	}
	if toks[2].Literal != "users" || !toks[2].Quoted {
		t.Errorf("qualified backtick identifier: %+v", toks[2])
	}
	// A quoted reserved word stays an identifier token.
	if toks[3].Type != TOKEN_IDENT || toks[3].Literal != "order" {
		t.Errorf("quoted keyword should lex as identifier: %+v", toks[3])
	}
	if toks[4].Literal != `col"name` {
		t.Errorf("doubled-quote escape: %q", toks[4].Literal)
	}
}

func TestLexer_StringLiterals(t *testing.T) {
	toks := Tokenize("'it''s (fine)'")

	if toks[0].Type != TOKEN_STRING {
		t.Fatalf("expected string token, got %v", toks[0].Type)
	}
	if toks[0].Literal != "it's (fine)" {
		t.Errorf("string literal: %q", toks[0].Literal)
	}
	// Parentheses inside the literal must not surface as delimiter tokens.
	for _, tok := range toks[1:] {
		if tok.Type == TOKEN_LPAREN || tok.Type == TOKEN_RPAREN {
			t.Errorf("paren from string literal leaked: %+v", tok)
		}
	}
}

func TestLexer_SkipsComments(t *testing.T) {
	toks := Tokenize("users -- comment\n/* block */ orders")

	var idents []string
	for _, tok := range toks {
		if tok.Type == TOKEN_IDENT {
			idents = append(idents, tok.Literal)
		}
	}
	if len(idents) != 2 || idents[0] != "users" || idents[1] != "orders" {
		t.Errorf("identifiers: %v", idents)
	}
}

func TestLexer_Numbers(t *testing.T) {
	for _, lit := range []string{"123", "45.67", "1e10", "2E-5"} {
		toks := Tokenize(lit)
		if toks[0].Type != TOKEN_NUMBER || toks[0].Literal != lit {
			t.Errorf("number %q: %+v", lit, toks[0])
		}
	}
}

func TestLexer_Offsets(t *testing.T) {
	toks := Tokenize("ab (cd)")

	if toks[0].Pos.Offset != 0 {
		t.Errorf("first token offset: %d", toks[0].Pos.Offset)
	}
	if toks[1].Type != TOKEN_LPAREN || toks[1].Pos.Offset != 3 {
		t.Errorf("lparen offset: %+v", toks[1])
	}
	if toks[3].Type != TOKEN_RPAREN || toks[3].Pos.Offset != 6 {
		t.Errorf("rparen offset: %+v", toks[3])
	}
}

func TestScriptLexer_QuotesAreTrivia(t *testing.T) {
	toks := TokenizeScript(`sql = "SELECT * FROM users"`)

	sawFrom := false
	for i, tok := range toks {
		if tok.Type == TOKEN_FROM && i+1 < len(toks) && toks[i+1].Literal == "users" {
			sawFrom = true
		}
	}
	if !sawFrom {
		t.Errorf("FROM users not visible through host string literal: %v", toks)
	}
}
