// Package manifest reads and writes the line-delimited list of acquired
// source documents.
package manifest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"cardstats/lib/fsutil"
)

var ErrNotFound = errors.New("manifest not found")

// Entry is one acquired document. Year and Month are nil when they could not
// be inferred at download time.
type Entry struct {
	Path      string `json:"path"`
	Year      *int   `json:"year"`
	Month     *int   `json:"month"`
	SourceURL string `json:"source_url"`
}

// Period returns the year and month of the entry when both are known.
func (e Entry) Period() (year, month int, ok bool) {
	if e.Year == nil || e.Month == nil {
		return 0, 0, false
	}
	return *e.Year, *e.Month, true
}

// LineError is a manifest line that could not be decoded.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e LineError) Unwrap() error {
	return e.Err
}

// Read decodes every non-blank line of the manifest at `path`. Lines that
// fail to decode, or that have no path, are returned as LineErrors in file
// order rather than failing the whole read.
func Read(path string) ([]Entry, []LineError, error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, nil, err
	}

	var entries []Entry
	var lineErrs []LineError

	scanner := bufio.NewScanner(bytes.NewReader(contents))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var entry Entry
		err := json.Unmarshal([]byte(text), &entry)
		if err == nil && strings.TrimSpace(entry.Path) == "" {
			err = errors.New("missing path")
		}
		if err != nil {
			lineErrs = append(lineErrs, LineError{Line: line, Text: text, Err: err})
			continue
		}
		entries = append(entries, entry)
	}
	err = scanner.Err()
	if err != nil {
		return nil, nil, err
	}
	return entries, lineErrs, nil
}

// Write replaces the manifest at `path` with one JSON object per line.
func Write(path string, entries []Entry) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, e := range entries {
		err := enc.Encode(e)
		if err != nil {
			return err
		}
	}
	return fsutil.WriteFileAtomic(path, buf.Bytes(), 0644)
}
