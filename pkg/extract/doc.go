// Package extract implements lexical table-reference extraction from
// raw text containing SQL.
//
// Given text that may embed SQL in arbitrary surroundings (scripts,
// shell heredocs, source files), it identifies every referenced table
// name, classifies each reference by the clause that introduced it
// (FROM, JOIN, INSERT, UPDATE, DELETE, CREATE/DROP/ALTER/TRUNCATE
// TABLE), and separately resolves Common Table Expression names so they
// can be excluded from the real-table result set.
//
// The engine is a pure-function pipeline:
//
//	Clean -> Tokenize -> extractCTEs -> classify -> aggregate
//
// It produces a best-effort structural extraction, not a verified AST:
// there is no grammar, no semantic validation, and no dialect-specific
// execution. Malformed constructs (unbalanced parentheses, pathological
// nesting) truncate their own scan and surface as warnings on the
// result; one bad statement never aborts the whole input.
//
// # Usage
//
//	result := extract.ExtractSQL(`
//	    WITH recent AS (SELECT * FROM orders WHERE ts > now() - 7)
//	    SELECT * FROM recent r JOIN customers c ON c.id = r.customer_id`)
//
//	result.AllTables.Sorted()  // [customers orders]
//	result.CTETables.Names()   // [recent]
//
// All entry points are safe for concurrent use: extraction holds no
// shared mutable state, and the compiled patterns and keyword tables are
// immutable process-wide configuration.
package extract
