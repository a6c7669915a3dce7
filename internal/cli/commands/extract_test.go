package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tablescan/internal/report"
	"github.com/leapstack-labs/tablescan/internal/source"
)

func mustDetect(path string) source.Mode {
	return source.ModeForPath(path)
}

func runExtractCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("TABLESCAN_OUTPUT", "json")

	cmd := NewExtractCommand()
	// The root command silences cobra's error/usage printing; mirror
	// that here so the output buffer holds only rendered reports.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestExtractCommand_Expr(t *testing.T) {
	out, _, err := runExtractCommand(t, "", "-e", "SELECT * FROM users JOIN orders o ON o.user_id = users.id")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "<expr>", rep.Source)
	assert.Equal(t, []string{"users"}, rep.Tables["select_from"])
	assert.Equal(t, []string{"orders"}, rep.Tables["join"])
	assert.ElementsMatch(t, []string{"users", "orders"}, rep.AllTables)
}

func TestExtractCommand_Stdin(t *testing.T) {
	out, _, err := runExtractCommand(t, "INSERT INTO audit_log SELECT * FROM events")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "<stdin>", rep.Source)
	assert.Equal(t, []string{"audit_log"}, rep.Tables["insert"])
}

func TestExtractCommand_Files(t *testing.T) {
	dir := t.TempDir()
	sqlPath := filepath.Join(dir, "query.sql")
	pyPath := filepath.Join(dir, "job.py")
	require.NoError(t, os.WriteFile(sqlPath, []byte("SELECT * FROM users"), 0o644))
	require.NoError(t, os.WriteFile(pyPath, []byte(`df = pd.read_sql("SELECT * FROM orders", conn)`), 0o644))

	out, _, err := runExtractCommand(t, "", sqlPath, pyPath)
	require.NoError(t, err)

	var reps []report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reps))
	require.Len(t, reps, 2)
	assert.Equal(t, "sql", reps[0].Mode)
	assert.Equal(t, []string{"users"}, reps[0].AllTables)
	assert.Equal(t, "script", reps[1].Mode)
	assert.Equal(t, []string{"orders"}, reps[1].AllTables)
}

func TestExtractCommand_Merge(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.sql")
	b := filepath.Join(dir, "b.sql")
	require.NoError(t, os.WriteFile(a, []byte("SELECT * FROM users"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("WITH users AS (SELECT * FROM raw_users) SELECT * FROM users"), 0o644))

	out, _, err := runExtractCommand(t, "", "--merge", a, b)
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "2 files", rep.Source)
	assert.Equal(t, []string{"users"}, rep.CTETables)
	assert.Equal(t, []string{"raw_users"}, rep.AllTables)
}

func TestExtractCommand_MissingFile(t *testing.T) {
	_, _, err := runExtractCommand(t, "", filepath.Join(t.TempDir(), "nope.sql"))
	require.Error(t, err)
}

func TestExtractCommand_PerFileIsolation(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.sql")
	require.NoError(t, os.WriteFile(good, []byte("SELECT * FROM users"), 0o644))

	out, _, err := runExtractCommand(t, "", good, filepath.Join(dir, "missing.sql"))
	require.Error(t, err)

	// The readable file is still extracted and rendered.
	var reps []report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reps))
	require.Len(t, reps, 1)
	assert.Equal(t, []string{"users"}, reps[0].AllTables)
}

func TestExtractCommand_ExprWithFilesRejected(t *testing.T) {
	_, _, err := runExtractCommand(t, "", "-e", "SELECT 1", "somefile.sql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--expr")
}
