package mapreduce

import (
	"fmt"
	"path/filepath"

	"github.com/dtnitsch/spell-pseudodata/models"
	"github.com/dtnitsch/spell-pseudodata/pkg/corpus"
)

// Apostrophe is a noise derivative that breaks downstream consumers.
// Rows carrying it are dropped before counting.
const Apostrophe = "'"

// FileStats summarises one aggregated file.
type FileStats struct {
	File    string
	Rows    int
	Counted int
	Skipped int
}

// Map folds a single record into wt. It returns false when the record was
// skipped (fewer than two fields, or an apostrophe derivative).
func Map(wt models.WordTable, record []string) bool {
	row, ok := corpus.ParseRow(record)
	if !ok || row.Derivative == Apostrophe {
		return false
	}
	wt.Observe(row.Derivative, row.Word)
	return true
}

// MapFile aggregates every record of path into wt.
func MapFile(wt models.WordTable, path string) (FileStats, error) {
	stats := FileStats{File: filepath.Base(path)}
	err := corpus.ScanFile(path, func(record []string) error {
		stats.Rows++
		if Map(wt, record) {
			stats.Counted++
		} else {
			stats.Skipped++
		}
		return nil
	})
	return stats, err
}

// Aggregate builds a fresh FrequencyTable from the named files under dir.
// With models.PartitionGlobal every file shares the models.GlobalFile entry.
func Aggregate(dir string, files []string, partition models.Partition) (models.FrequencyTable, []FileStats, error) {
	table := make(models.FrequencyTable)
	stats := make([]FileStats, 0, len(files))
	for _, name := range files {
		key := name
		if partition == models.PartitionGlobal {
			key = models.GlobalFile
		}
		s, err := MapFile(table.File(key), filepath.Join(dir, name))
		if err != nil {
			return nil, stats, fmt.Errorf("failed to aggregate %s: %w", name, err)
		}
		stats = append(stats, s)
	}
	return table, stats, nil
}

// Reduce merges tables additively into a new table.
func Reduce(tables ...models.FrequencyTable) models.FrequencyTable {
	final := make(models.FrequencyTable)
	for _, t := range tables {
		for file, wt := range t {
			dst := final.File(file)
			for word, counts := range wt {
				dc, ok := dst[word]
				if !ok {
					dc = make(models.DerivativeCounts, len(counts))
					dst[word] = dc
				}
				for derivative, n := range counts {
					dc[derivative] += n
				}
			}
		}
	}
	return final
}
