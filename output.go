package dialogen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// DialogueWriter persists the full list of dialogues generated so far.
type DialogueWriter interface {
	WriteDialogues(dialogues []Dialogue) error
}

// JSONFileWriter writes JSON to Path, replacing the file atomically.
type JSONFileWriter struct {
	Path    string
	Options OutputOptions
}

func NewJSONFileWriter(path string, opts OutputOptions) *JSONFileWriter {
	return &JSONFileWriter{Path: path, Options: opts}
}

func (w *JSONFileWriter) WriteDialogues(dialogues []Dialogue) error {
	if dialogues == nil {
		dialogues = []Dialogue{}
	}
	return w.Write(dialogues)
}

// WriteDialogue writes a single dialogue object, as the test run does.
func (w *JSONFileWriter) WriteDialogue(d Dialogue) error {
	return w.Write(d)
}

// Write encodes v and renames a temp file over Path, so readers only ever
// see a complete document.
func (w *JSONFileWriter) Write(v any) error {
	data, err := MarshalJSON(v, w.Options)
	if err != nil {
		return err
	}
	dir := filepath.Dir(w.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("cannot create temp file for %s: %w", w.Path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write %s: %w", w.Path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot sync %s: %w", w.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot close %s: %w", w.Path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("cannot chmod %s: %w", w.Path, err)
	}
	if err := os.Rename(tmpName, w.Path); err != nil {
		return fmt.Errorf("cannot replace %s: %w", w.Path, err)
	}
	return nil
}

// MarshalJSON encodes v without HTML escaping. Indent 0 is compact; EnsureASCII
// escapes every non-ASCII rune.
func MarshalJSON(v any, opts OutputOptions) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", opts.Indent))
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("cannot encode JSON: %w", err)
	}
	out := buf.Bytes()
	if opts.EnsureASCII {
		out = escapeNonASCII(out)
	}
	return out, nil
}

// escapeNonASCII rewrites non-ASCII runes as \uXXXX, using surrogate pairs
// above the BMP. Valid on encoder output since such runes only occur in strings.
func escapeNonASCII(data []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		switch {
		case r < utf8.RuneSelf:
			buf.WriteByte(byte(r))
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			writeUnicodeEscape(&buf, hi)
			writeUnicodeEscape(&buf, lo)
		default:
			writeUnicodeEscape(&buf, r)
		}
	}
	return buf.Bytes()
}

func writeUnicodeEscape(buf *bytes.Buffer, r rune) {
	hex := strconv.FormatInt(int64(r), 16)
	buf.WriteString(`\u`)
	buf.WriteString(strings.Repeat("0", 4-len(hex)))
	buf.WriteString(hex)
}
