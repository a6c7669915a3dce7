package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupFixtureTree creates a temporary directory holding a small mix
// of SQL files and a host script, mirroring the file layouts the CLI
// is pointed at. Returns the directory root.
func SetupFixtureTree(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(tmpDir, "models", "staging"), 0o755); err != nil {
		t.Fatalf("failed to create models dir: %v", err)
	}

	files := map[string]string{
		filepath.Join("models", "staging", "stg_customers.sql"): `
WITH cleaned AS (
    SELECT id, TRIM(name) AS name FROM raw_customers
)
SELECT * FROM cleaned`,
		filepath.Join("models", "orders.sql"): `
SELECT o.id, c.name
FROM orders o
JOIN customers c ON c.id = o.customer_id`,
		"load.py": `
import sqlite3

def load(conn):
    conn.execute("INSERT INTO order_facts SELECT * FROM staging_orders")
`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	return tmpDir
}
