// Package corpus reads the two-column (derivative, word) CSV files that feed
// aggregation and sampling.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"
)

const (
	DerivativeField = 0
	WordField       = 1
)

// Row is a single (derivative, word) observation.
type Row struct {
	Derivative string
	Word       string
}

// ListFiles returns the names of all regular entries directly under dir,
// sorted. Every entry is assumed to be a data file.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// NewReader returns a csv.Reader configured for the corpus dialect:
// comma delimited, minimal quoting, variable field counts.
func NewReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = ','
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// ParseRow converts a raw record into a Row. Records with fewer than two
// fields are reported as not ok.
func ParseRow(record []string) (Row, bool) {
	if len(record) <= WordField {
		return Row{}, false
	}
	return Row{Derivative: record[DerivativeField], Word: record[WordField]}, true
}

// ErrInvalidUTF8 is returned when a field is not valid UTF-8. Such input
// cannot be stored losslessly and fails the run.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Scan reads r record by record and calls fn for each. Short records are
// passed through as-is so callers decide how to treat them.
func Scan(r io.Reader, fn func(record []string) error) error {
	cr := NewReader(r)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}
		for i, field := range record {
			if !utf8.ValidString(field) {
				line, _ := cr.FieldPos(i)
				return fmt.Errorf("line %d field %d: %w", line, i, ErrInvalidUTF8)
			}
		}
		if err := fn(record); err != nil {
			return err
		}
	}
}

// ScanFile opens path, scans it with fn and closes it on every exit path.
func ScanFile(path string, fn func(record []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if err := Scan(f, fn); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}
