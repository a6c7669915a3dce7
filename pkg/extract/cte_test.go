package extract

import (
	"errors"
	"strings"
	"testing"
)

func resolveCTEs(t *testing.T, sql string) (*CTESet, []string) {
	t.Helper()
	return extractCTEs(Tokenize(Clean(sql, false)), DefaultMaxDepth)
}

func TestExtractCTEs_Single(t *testing.T) {
	set, warnings := resolveCTEs(t, `WITH cs AS (SELECT id FROM orders) SELECT * FROM cs`)

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if got := set.Names.Names(); len(got) != 1 || got[0] != "cs" {
		t.Errorf("CTE names: %v", got)
	}
	if len(set.Spans) != 1 {
		t.Fatalf("expected 1 body span, got %d", len(set.Spans))
	}
}

func TestExtractCTEs_MultipleCommaSeparated(t *testing.T) {
	sql := `WITH a AS (SELECT 1), b AS (SELECT 2), c AS (SELECT 3) SELECT * FROM a`
	set, _ := resolveCTEs(t, sql)

	if got := set.Names.Names(); len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("CTE names: %v", got)
	}
}

func TestExtractCTEs_CommaStopsGroup(t *testing.T) {
	// After the closing paren the next token is FROM, not a comma, so
	// "users" below must not be captured as a CTE.
	sql := `WITH a AS (SELECT 1) SELECT * FROM users`
	set, _ := resolveCTEs(t, sql)

	if set.Names.Contains("users") {
		t.Errorf("non-CTE identifier captured: %v", set.Names.Names())
	}
}

func TestExtractCTEs_Recursive(t *testing.T) {
	sql := `WITH RECURSIVE eh AS (
		SELECT id FROM employees WHERE manager_id IS NULL
		UNION ALL
		SELECT e.id FROM employees e JOIN eh ON e.manager_id = eh.id
	) SELECT * FROM eh`
	set, _ := resolveCTEs(t, sql)

	if got := set.Names.Names(); len(got) != 1 || got[0] != "eh" {
		t.Errorf("CTE names: %v", got)
	}
}

func TestExtractCTEs_NestedParensInBody(t *testing.T) {
	// The body holds a parenthesized subquery: a naive scan to the next
	// top-level keyword would close the body too early.
	sql := `WITH a AS (SELECT * FROM (SELECT * FROM x) t) SELECT * FROM a`
	set, _ := resolveCTEs(t, sql)

	if got := set.Names.Names(); len(got) != 1 || got[0] != "a" {
		t.Errorf("CTE names: %v", got)
	}
	if len(set.Spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(set.Spans))
	}
}

func TestExtractCTEs_NestedWith(t *testing.T) {
	sql := `WITH outer_cte AS (
		WITH inner_cte AS (SELECT id FROM raw_events)
		SELECT * FROM inner_cte
	) SELECT * FROM outer_cte`
	set, _ := resolveCTEs(t, sql)

	for _, name := range []string{"outer_cte", "inner_cte"} {
		if !set.Names.Contains(name) {
			t.Errorf("missing CTE %q in %v", name, set.Names.Names())
		}
	}
}

func TestExtractCTEs_CommentsBetweenDefinitions(t *testing.T) {
	sql := "WITH -- note\n a AS (SELECT 1), /* note */ b AS (SELECT 2) SELECT * FROM a JOIN b"
	set, _ := resolveCTEs(t, sql)

	if got := set.Names.Names(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("CTE names: %v", got)
	}
}

func TestExtractCTEs_CaseInsensitiveDedup(t *testing.T) {
	sql := `WITH CTE1 AS (SELECT 1) SELECT * FROM CTE1;
		WITH cte1 AS (SELECT 2) SELECT * FROM cte1;
		WITH Cte1 AS (SELECT 3) SELECT * FROM Cte1`
	set, _ := resolveCTEs(t, sql)

	if set.Names.Len() != 1 {
		t.Errorf("expected 1 deduplicated name, got %v", set.Names.Names())
	}
	// First spelling wins.
	if got := set.Names.Names(); got[0] != "CTE1" {
		t.Errorf("first-seen spelling not preserved: %v", got)
	}
}

func TestExtractCTEs_ParensInsideStringLiteral(t *testing.T) {
	sql := `WITH a AS (SELECT * FROM t WHERE note = 'open ( paren') SELECT * FROM a`
	set, warnings := resolveCTEs(t, sql)

	if len(warnings) != 0 {
		t.Fatalf("string-literal paren broke the balanced scan: %v", warnings)
	}
	if got := set.Names.Names(); len(got) != 1 || got[0] != "a" {
		t.Errorf("CTE names: %v", got)
	}
}

func TestExtractCTEs_UnbalancedBody(t *testing.T) {
	sql := `WITH a AS (SELECT * FROM t`
	set, warnings := resolveCTEs(t, sql)

	if len(warnings) == 0 {
		t.Fatal("expected a warning for unbalanced body")
	}
	// The name is still recorded so references to it are excluded.
	if !set.Names.Contains("a") {
		t.Errorf("truncated CTE name lost: %v", set.Names.Names())
	}
}

func TestExtractCTEs_NotATrigger(t *testing.T) {
	// "with" appearing as part of an identifier must not trigger.
	sql := `SELECT * FROM orders_with_totals`
	set, _ := resolveCTEs(t, sql)

	if set.Names.Len() != 0 {
		t.Errorf("unexpected CTEs: %v", set.Names.Names())
	}
}

func TestMatchingParen_DepthBound(t *testing.T) {
	depth := 8
	sql := "WITH a AS " + strings.Repeat("(", depth) + "SELECT 1" + strings.Repeat(")", depth)
	toks := Tokenize(sql)

	// Locate the first LPAREN.
	open := -1
	for i, tok := range toks {
		if tok.Type == TOKEN_LPAREN {
			open = i
			break
		}
	}
	if open < 0 {
		t.Fatal("no LPAREN found")
	}

	if _, err := matchingParen(toks, open, depth); err != nil {
		t.Errorf("depth %d within bound %d should match: %v", depth, depth, err)
	}

	_, err := matchingParen(toks, open, depth-1)
	if err == nil {
		t.Fatal("expected depth-bound error")
	}
	if !errors.Is(err, ErrDepthExceeded) {
		t.Errorf("expected ErrDepthExceeded, got %v", err)
	}
	var malformed *MalformedInputError
	if !errors.As(err, &malformed) {
		t.Errorf("expected *MalformedInputError, got %T", err)
	}
}
