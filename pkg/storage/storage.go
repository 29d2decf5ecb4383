package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/dtnitsch/spell-pseudodata/models"
	"github.com/dtnitsch/spell-pseudodata/pkg/corpus"
)

// ErrTableNotFound is returned when no persisted table exists yet.
var ErrTableNotFound = errors.New("derivative table not found")

// Storage persists the frequency table as a single JSON document.
type Storage struct {
	TablePath string
}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

func (s *Storage) SaveFile(filePath string, content []byte) error {
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

func (s *Storage) ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

func (s *Storage) HasFile(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil || !os.IsNotExist(err)
}

// GetFileStats returns metadata about a file using os.Stat (no I/O overhead).
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}
	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}

// validateKeys rejects keys that JSON cannot carry byte-for-byte.
func validateKeys(table models.FrequencyTable) error {
	for file, wt := range table {
		if !utf8.ValidString(file) {
			return fmt.Errorf("file %q: %w", file, corpus.ErrInvalidUTF8)
		}
		for word, counts := range wt {
			if !utf8.ValidString(word) {
				return fmt.Errorf("%s: word %q: %w", file, word, corpus.ErrInvalidUTF8)
			}
			for derivative := range counts {
				if !utf8.ValidString(derivative) {
					return fmt.Errorf("%s: derivative %q of %q: %w", file, derivative, word, corpus.ErrInvalidUTF8)
				}
			}
		}
	}
	return nil
}

// Save writes the whole table as one document, replacing any previous one.
func (s *Storage) Save(table models.FrequencyTable) error {
	if err := validateKeys(table); err != nil {
		return err
	}
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal table: %w", err)
	}
	return s.SaveFile(s.TablePath, data)
}

// Load reads the table document. ErrTableNotFound is returned when the
// document does not exist.
func (s *Storage) Load() (models.FrequencyTable, error) {
	if !s.HasFile(s.TablePath) {
		return nil, fmt.Errorf("%s: %w", s.TablePath, ErrTableNotFound)
	}
	data, err := s.ReadFile(s.TablePath)
	if err != nil {
		return nil, err
	}
	table := make(models.FrequencyTable)
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.TablePath, err)
	}
	return table, nil
}

// WriteReport renders the table for inspection, one line per (file, word):
// word,derivative1,count1,derivative2,count2,...
// Files, words and derivatives are written in sorted order.
func (s *Storage) WriteReport(path string, table models.FrequencyTable) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create report: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	lines := 0
	for _, file := range table.Files() {
		wt := table[file]
		for _, word := range wt.Words() {
			counts := wt[word]
			record := make([]string, 0, 1+2*len(counts))
			record = append(record, word)
			for _, d := range counts.Keys() {
				record = append(record, d, strconv.Itoa(counts[d]))
			}
			if err := corpus.WriteRecord(bw, record); err != nil {
				return lines, fmt.Errorf("failed to write report: %w", err)
			}
			lines++
		}
	}
	if err := bw.Flush(); err != nil {
		return lines, fmt.Errorf("failed to write report: %w", err)
	}
	return lines, f.Close()
}
