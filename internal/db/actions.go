package db

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/spell-pseudodata/internal/common"
	dbpkg "github.com/dtnitsch/spell-pseudodata/pkg/db"
	"github.com/urfave/cli/v2"
)

// RunsAction lists recorded pseudodata runs from the SQLite database.
func RunsAction(c *cli.Context) error {
	cfg, err := common.BuildConfig(c)
	if err != nil {
		return err
	}
	if cfg.DBPath == "" {
		return fmt.Errorf("no database configured, pass --db or set db_path")
	}
	w := c.App.Writer
	if !dbpkg.Exists(cfg.DBPath) {
		fmt.Fprintf(w, "No database at %s\n", cfg.DBPath)
		return nil
	}

	database, err := dbpkg.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return nil
	}

	fmt.Fprintf(w, "%-6s %-20s %-24s %-9s %-8s %-8s %-8s %-20s\n",
		"ID", "Created", "File", "Policy", "Rows", "Emitted", "Skipped", "Seed")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, r := range runs {
		fmt.Fprintf(w, "%-6d %-20s %-24s %-9s %-8d %-8d %-8d %-20d\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.File,
			r.Policy,
			r.Rows,
			r.Emitted,
			r.Skipped,
			r.Seed,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(w, "\nTip: Re-run with --seed <seed> to reproduce a run\n")

	return nil
}
