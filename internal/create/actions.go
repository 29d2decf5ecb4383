package create

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dtnitsch/spell-pseudodata/internal/common"
	"github.com/dtnitsch/spell-pseudodata/pkg/corpus"
	"github.com/dtnitsch/spell-pseudodata/pkg/db"
	"github.com/dtnitsch/spell-pseudodata/pkg/sampler"
	"github.com/dustin/go-humanize"
)

// targets expands target into input paths: every entry of a directory, or
// the file itself.
func targets(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", target, err)
	}
	if !info.IsDir() {
		return []string{target}, nil
	}
	names, err := corpus.ListFiles(target)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(target, n)
	}
	return paths, nil
}

// Run generates one pseudodata file per target input. A missing table is
// reported to the operator and is not an error.
func Run(env *common.Env, target string) ([]sampler.Stats, error) {
	cfg := env.Config
	logger := env.Logger

	table, err := env.LoadTable()
	if err != nil {
		if env.ReportMissingTable(err) {
			return nil, nil
		}
		return nil, err
	}

	policy, err := sampler.NewPolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}

	paths, err := targets(target)
	if err != nil {
		return nil, err
	}

	var database *db.DB
	if cfg.DBPath != "" {
		database, err = db.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		defer database.Close()
	}

	s := sampler.New(table, policy, cfg.Seed)
	logger.Info("creating pseudodata", "target", target, "files", len(paths), "policy", cfg.Policy, "seed", s.Seed)

	all := make([]sampler.Stats, 0, len(paths))
	for _, p := range paths {
		stats, err := s.GenerateFile(p, cfg.OutputDir, cfg.OutputPrefix)
		if err != nil {
			return all, err
		}
		all = append(all, stats)
		logger.Info("created pseudodata", "file", stats.File, "output", stats.Output,
			"rows", stats.Rows, "emitted", stats.Emitted, "skipped", stats.Skipped)

		if database != nil {
			if _, err := database.RecordRun(db.Run{
				File:       stats.File,
				OutputPath: stats.Output,
				Policy:     cfg.Policy,
				Seed:       s.Seed,
				Rows:       stats.Rows,
				Emitted:    stats.Emitted,
				Skipped:    stats.Skipped,
			}); err != nil {
				return all, err
			}
		}

		fmt.Fprintf(env.Out, "Pseudodata saved to: %s (%s lines, %s skipped)\n",
			stats.Output, humanize.Comma(int64(stats.Emitted)), humanize.Comma(int64(stats.Skipped)))
	}
	return all, nil
}
