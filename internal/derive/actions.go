package derive

import (
	"fmt"

	"github.com/dtnitsch/spell-pseudodata/internal/common"
	"github.com/dtnitsch/spell-pseudodata/models"
	"github.com/dtnitsch/spell-pseudodata/pkg/corpus"
	"github.com/dtnitsch/spell-pseudodata/pkg/db"
	"github.com/dtnitsch/spell-pseudodata/pkg/mapreduce"
	"github.com/dtnitsch/spell-pseudodata/pkg/storage"
	"github.com/dustin/go-humanize"
)

// Run aggregates every file under dir into a fresh table, persists it and
// leaves it on env for later modes.
func Run(env *common.Env, dir string) (models.FrequencyTable, error) {
	logger := env.Logger
	cfg := env.Config

	files, err := corpus.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	logger.Info("deriving word derivatives", "path", dir, "files", len(files), "partition", cfg.Partition)

	table, stats, err := mapreduce.Aggregate(dir, files, cfg.Partition)
	if err != nil {
		return nil, err
	}

	rows, skipped := 0, 0
	for _, s := range stats {
		logger.Info("aggregated file", "file", s.File, "rows", s.Rows, "counted", s.Counted, "skipped", s.Skipped)
		rows += s.Rows
		skipped += s.Skipped
	}

	s := &storage.Storage{TablePath: cfg.TableFile}
	if err := s.Save(table); err != nil {
		return nil, err
	}
	size := ""
	if fs, err := s.GetFileStats(cfg.TableFile); err == nil {
		size = humanize.Bytes(uint64(fs.SizeBytes))
	}
	logger.Info("saved derivative table", "path", cfg.TableFile, "size", size)

	if cfg.DBPath != "" {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		defer database.Close()
		if err := database.SaveTable(table); err != nil {
			return nil, err
		}
		logger.Info("saved derivative table", "path", database.Path())
	}

	fmt.Fprintf(env.Out, "Derived %s (word, derivative) pairs from %s rows in %d files (%s rows skipped)\n",
		humanize.Comma(int64(table.Pairs())), humanize.Comma(int64(rows)), len(files), humanize.Comma(int64(skipped)))
	if cfg.Top > 0 {
		fmt.Fprintf(env.Out, "\n--- Top %d Misspellings ---\n", cfg.Top)
		mapreduce.PrintTopPairs(env.Out, table, cfg.Top)
	}

	env.Table = table
	return table, nil
}
