package common

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dtnitsch/spell-pseudodata/models"
	"github.com/dtnitsch/spell-pseudodata/pkg/db"
	"github.com/dtnitsch/spell-pseudodata/pkg/storage"
	"github.com/urfave/cli/v2"
)

// MissingTableMessage is shown when a mode needs a table and none exists.
const MissingTableMessage = "No derivative table was found, please use --derive to create one"

// Env carries configuration and the in-memory table between modes of a
// single invocation.
type Env struct {
	Config *models.Config
	Logger *slog.Logger
	Out    io.Writer
	// Table is set by derive; later modes reuse it instead of reloading.
	Table models.FrequencyTable
}

// NewLogger builds the JSON stderr logger used by every action.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	} else if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// BuildConfig loads the YAML config and applies any flags that were set.
func BuildConfig(c *cli.Context) (*models.Config, error) {
	path := c.String("config")
	cfg, err := models.LoadConfig(path, !c.IsSet("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("table") {
		cfg.TableFile = c.String("table")
	}
	if c.IsSet("report") {
		cfg.ReportFile = c.String("report")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("prefix") {
		cfg.OutputPrefix = c.String("prefix")
	}
	if c.Bool("global") {
		cfg.Partition = models.PartitionGlobal
	}
	if c.IsSet("policy") {
		cfg.Policy = c.String("policy")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Uint64("seed")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("store") {
		cfg.Store = models.Store(c.String("store"))
	}
	if c.IsSet("top") {
		cfg.Top = c.Int("top")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTable returns the in-memory table if derive ran in this invocation,
// otherwise it loads the persisted one from the configured store.
func (e *Env) LoadTable() (models.FrequencyTable, error) {
	if e.Table != nil {
		return e.Table, nil
	}

	var table models.FrequencyTable
	var err error
	switch e.Config.Store {
	case models.StoreSQLite:
		if !db.Exists(e.Config.DBPath) {
			return nil, fmt.Errorf("%s: %w", e.Config.DBPath, storage.ErrTableNotFound)
		}
		var database *db.DB
		database, err = db.Open(e.Config.DBPath)
		if err != nil {
			return nil, err
		}
		defer database.Close()
		table, err = database.LoadTable()
	default:
		s := &storage.Storage{TablePath: e.Config.TableFile}
		table, err = s.Load()
	}
	if err != nil {
		return nil, err
	}

	e.Logger.Debug("loaded derivative table", "store", e.Config.Store, "files", len(table))
	e.Table = table
	return table, nil
}

// ReportMissingTable prints the operator hint when err is ErrTableNotFound
// and reports whether it did. Other errors are left to the caller.
func (e *Env) ReportMissingTable(err error) bool {
	if !errors.Is(err, storage.ErrTableNotFound) {
		return false
	}
	e.Logger.Debug("table lookup failed", "error", err)
	fmt.Fprintln(e.Out, MissingTableMessage)
	return true
}
