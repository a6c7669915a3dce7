// Package source loads SQL files and host-language scripts for extraction.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding marks content that is neither valid UTF-8 nor
// BOM-tagged UTF-16, so callers can tell it apart from read failures.
var ErrInvalidEncoding = errors.New("invalid UTF-8 content")

// Mode describes how a loaded file should be tokenized.
type Mode int

const (
	// ModeSQL treats the whole input as SQL text.
	ModeSQL Mode = iota
	// ModeScript treats the input as a host-language script with
	// embedded SQL (quote characters become insignificant).
	ModeScript
)

// String returns the mode name used in CLI flags and reports.
func (m Mode) String() string {
	if m == ModeScript {
		return "script"
	}
	return "sql"
}

// ParseMode maps a flag value to a Mode. "auto" defers to the
// file extension at load time.
func ParseMode(s string) (Mode, bool, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ModeSQL, true, nil
	case "sql":
		return ModeSQL, false, nil
	case "script":
		return ModeScript, false, nil
	}
	return ModeSQL, false, fmt.Errorf("unknown mode %q (want auto, sql, or script)", s)
}

// sqlExtensions are file extensions loaded as plain SQL. Everything
// else is assumed to be a host script carrying embedded SQL.
var sqlExtensions = map[string]bool{
	".sql": true,
	".ddl": true,
	".dml": true,
	".hql": true,
}

// ModeForPath picks the tokenization mode from a file extension.
func ModeForPath(path string) Mode {
	if sqlExtensions[strings.ToLower(filepath.Ext(path))] {
		return ModeSQL
	}
	return ModeScript
}

// Input is a decoded file ready for extraction.
type Input struct {
	Path string
	Text string
	Mode Mode
}

// Load reads and decodes a file. A UTF-8 or UTF-16 byte order mark
// is honored and stripped; otherwise the content is taken as UTF-8.
func Load(path string) (*Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	text, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &Input{Path: path, Text: text, Mode: ModeForPath(path)}, nil
}

// FromReader builds an Input from a stream, used for stdin.
func FromReader(r io.Reader, name string, mode Mode) (*Input, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	text, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return &Input{Path: name, Text: text, Mode: mode}, nil
}

var (
	utf8BOM    = []byte{0xef, 0xbb, 0xbf}
	utf16LEBOM = []byte{0xff, 0xfe}
	utf16BEBOM = []byte{0xfe, 0xff}
)

// decode strips any BOM and transcodes UTF-16 input to UTF-8.
func decode(raw []byte) (string, error) {
	// UTF-16 inputs are identified by their BOM; everything else must
	// already be valid UTF-8.
	if !bytes.HasPrefix(raw, utf16LEBOM) && !bytes.HasPrefix(raw, utf16BEBOM) {
		if !utf8.Valid(bytes.TrimPrefix(raw, utf8BOM)) {
			return "", ErrInvalidEncoding
		}
	}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", err
	}
	// Normalize CRLF so line-anchored host patterns behave the same
	// on Windows-authored files.
	out = bytes.ReplaceAll(out, []byte("\r\n"), []byte("\n"))
	return string(out), nil
}
