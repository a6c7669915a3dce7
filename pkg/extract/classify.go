package extract

// Category identifies the SQL clause that introduced a table reference.
type Category string

// The fixed, closed set of reference categories.
const (
	CategorySelectFrom    Category = "select_from"
	CategoryJoin          Category = "join"
	CategoryInsert        Category = "insert"
	CategoryUpdate        Category = "update"
	CategoryDelete        Category = "delete"
	CategoryCreateTable   Category = "create_table"
	CategoryDropTable     Category = "drop_table"
	CategoryAlterTable    Category = "alter_table"
	CategoryTruncateTable Category = "truncate_table"
)

// Categories lists all categories in reporting order.
var Categories = []Category{
	CategorySelectFrom,
	CategoryJoin,
	CategoryInsert,
	CategoryUpdate,
	CategoryDelete,
	CategoryCreateTable,
	CategoryDropTable,
	CategoryAlterTable,
	CategoryTruncateTable,
}

// CategoryMap maps each category to the set of table names found under
// it. Categories are independent; the same name may appear under several.
type CategoryMap map[Category]*IdentifierSet

// classifier extracts one category's table references from a token
// stream. Classifiers are pure functions and mutually non-exclusive.
type classifier func(toks []Token, out *IdentifierSet)

// classifiers is process-wide immutable configuration: one extractor
// per category, all operating on the same token stream.
var classifiers = map[Category]classifier{
	CategorySelectFrom:    classifySelectFrom,
	CategoryJoin:          classifyJoin,
	CategoryInsert:        classifyInsert,
	CategoryUpdate:        classifyUpdate,
	CategoryDelete:        classifyDelete,
	CategoryCreateTable:   classifyCreateTable,
	CategoryDropTable:     classifyDropTable,
	CategoryAlterTable:    classifyAlterTable,
	CategoryTruncateTable: classifyTruncateTable,
}

// classify runs every category extractor over toks.
func classify(toks []Token) CategoryMap {
	result := make(CategoryMap, len(classifiers))
	for cat, fn := range classifiers {
		set := NewIdentifierSet()
		fn(toks, set)
		result[cat] = set
	}
	return result
}

// addIdentAfter consumes the identifier at toks[i] and records it when
// valid. The shared consumption rule for every classifier.
func addIdentAfter(toks []Token, i int, out *IdentifierSet) {
	name, _, ok := consumeIdentifier(toks, i)
	if ok && ValidIdentifier(name) {
		out.Add(name)
	}
}

// classifySelectFrom records the table following each FROM keyword.
// `FROM (` opens a derived-table subquery: the parenthesis is not a
// table, and the linear scan reaches the nested FROM/JOIN references
// inside it on its own, so no recursion is needed. Aliases after the
// table name are plain identifiers and are simply not consumed.
func classifySelectFrom(toks []Token, out *IdentifierSet) {
	for i := 0; i < len(toks); i++ {
		if toks[i].Type == TOKEN_FROM {
			addIdentAfter(toks, i+1, out)
		}
	}
}

// classifyJoin records the table following each JOIN keyword. The
// optional INNER/LEFT/RIGHT/FULL/CROSS/OUTER prefixes all funnel into
// the same JOIN token, and `JOIN (` subqueries are handled the same
// way as in classifySelectFrom.
func classifyJoin(toks []Token, out *IdentifierSet) {
	for i := 0; i < len(toks); i++ {
		if toks[i].Type == TOKEN_JOIN {
			addIdentAfter(toks, i+1, out)
		}
	}
}

// classifyInsert records the table following INSERT INTO or the
// Hive-style INSERT OVERWRITE TABLE.
func classifyInsert(toks []Token, out *IdentifierSet) {
	for i := 0; i < len(toks); i++ {
		if toks[i].Type != TOKEN_INSERT {
			continue
		}
		switch {
		case i+1 < len(toks) && toks[i+1].Type == TOKEN_INTO:
			addIdentAfter(toks, i+2, out)
		case i+2 < len(toks) && toks[i+1].Type == TOKEN_OVERWRITE && toks[i+2].Type == TOKEN_TABLE:
			addIdentAfter(toks, i+3, out)
		}
	}
}

// classifyUpdate records the table following UPDATE.
func classifyUpdate(toks []Token, out *IdentifierSet) {
	for i := 0; i < len(toks); i++ {
		if toks[i].Type == TOKEN_UPDATE {
			addIdentAfter(toks, i+1, out)
		}
	}
}

// classifyDelete records the table following DELETE FROM.
func classifyDelete(toks []Token, out *IdentifierSet) {
	for i := 0; i < len(toks); i++ {
		if toks[i].Type == TOKEN_DELETE && i+1 < len(toks) && toks[i+1].Type == TOKEN_FROM {
			addIdentAfter(toks, i+2, out)
		}
	}
}

// classifyCreateTable records the table following
// CREATE [EXTERNAL] TABLE [IF NOT EXISTS]. CREATE INDEX/VIEW and other
// CREATE forms are recognized keywords with clause shapes this engine
// does not track; they are silently skipped.
func classifyCreateTable(toks []Token, out *IdentifierSet) {
	for i := 0; i < len(toks); i++ {
		if toks[i].Type != TOKEN_CREATE {
			continue
		}
		j := i + 1
		if j < len(toks) && toks[j].Type == TOKEN_EXTERNAL {
			j++
		}
		if j >= len(toks) || toks[j].Type != TOKEN_TABLE {
			continue
		}
		j++
		if j+2 < len(toks) && toks[j].Type == TOKEN_IF && toks[j+1].Type == TOKEN_NOT && toks[j+2].Type == TOKEN_EXISTS {
			j += 3
		}
		addIdentAfter(toks, j, out)
	}
}

// classifyDropTable records the table following DROP TABLE [IF EXISTS].
func classifyDropTable(toks []Token, out *IdentifierSet) {
	for i := 0; i < len(toks); i++ {
		if toks[i].Type != TOKEN_DROP || i+1 >= len(toks) || toks[i+1].Type != TOKEN_TABLE {
			continue
		}
		j := i + 2
		if j+1 < len(toks) && toks[j].Type == TOKEN_IF && toks[j+1].Type == TOKEN_EXISTS {
			j += 2
		}
		addIdentAfter(toks, j, out)
	}
}

// classifyAlterTable records the table following ALTER TABLE.
func classifyAlterTable(toks []Token, out *IdentifierSet) {
	for i := 0; i < len(toks); i++ {
		if toks[i].Type == TOKEN_ALTER && i+1 < len(toks) && toks[i+1].Type == TOKEN_TABLE {
			addIdentAfter(toks, i+2, out)
		}
	}
}

// classifyTruncateTable records the table following TRUNCATE [TABLE].
func classifyTruncateTable(toks []Token, out *IdentifierSet) {
	for i := 0; i < len(toks); i++ {
		if toks[i].Type != TOKEN_TRUNCATE {
			continue
		}
		j := i + 1
		if j < len(toks) && toks[j].Type == TOKEN_TABLE {
			j++
		}
		addIdentAfter(toks, j, out)
	}
}
