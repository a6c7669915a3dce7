package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestModeForPath(t *testing.T) {
	tests := []struct {
		path string
		want Mode
	}{
		{"queries/report.sql", ModeSQL},
		{"schema.DDL", ModeSQL},
		{"load.hql", ModeSQL},
		{"etl/pipeline.py", ModeScript},
		{"deploy.sh", ModeScript},
		{"README", ModeScript},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ModeForPath(tt.path), tt.path)
	}
}

func TestParseMode(t *testing.T) {
	mode, auto, err := ParseMode("auto")
	require.NoError(t, err)
	assert.True(t, auto)
	assert.Equal(t, ModeSQL, mode)

	mode, auto, err = ParseMode("script")
	require.NoError(t, err)
	assert.False(t, auto)
	assert.Equal(t, ModeScript, mode)

	_, _, err = ParseMode("bogus")
	assert.Error(t, err)
}

func TestLoad_StripsUTF8BOM(t *testing.T) {
	path := writeFile(t, "q.sql", []byte("\xef\xbb\xbfSELECT * FROM users"))

	in, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users", in.Text)
	assert.Equal(t, ModeSQL, in.Mode)
}

func TestLoad_UTF16LE(t *testing.T) {
	src := "SELECT 1"
	data := []byte{0xff, 0xfe}
	for _, r := range src {
		data = append(data, byte(r), 0x00)
	}
	path := writeFile(t, "q.sql", data)

	in, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, src, in.Text)
}

func TestLoad_NormalizesCRLF(t *testing.T) {
	path := writeFile(t, "job.py", []byte("import os\r\nsql = 1\r\n"))

	in, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "import os\nsql = 1\n", in.Text)
	assert.Equal(t, ModeScript, in.Mode)
}

func TestLoad_InvalidEncoding(t *testing.T) {
	path := writeFile(t, "q.sql", []byte{'S', 'E', 'L', 0xff, 0xfb, 0x01})

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	assert.NotErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.sql"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromReader(t *testing.T) {
	in, err := FromReader(strings.NewReader("SELECT * FROM t"), "<stdin>", ModeSQL)
	require.NoError(t, err)
	assert.Equal(t, "<stdin>", in.Path)
	assert.Equal(t, "SELECT * FROM t", in.Text)
}
