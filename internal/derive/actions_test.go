package derive

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/spell-pseudodata/internal/common"
	"github.com/dtnitsch/spell-pseudodata/models"
	"github.com/dtnitsch/spell-pseudodata/pkg/db"
	"github.com/dtnitsch/spell-pseudodata/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv(t *testing.T) *common.Env {
	t.Helper()
	cfg := models.DefaultConfig()
	cfg.TableFile = filepath.Join(t.TempDir(), models.DefaultTableFile)
	return &common.Env{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Out:    &bytes.Buffer{},
	}
}

func TestRunGlobalMirrorsToSQLite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("teh,the\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte("hte,the\nteh,the\n"), 0644))

	env := newEnv(t)
	env.Config.Partition = models.PartitionGlobal
	env.Config.DBPath = filepath.Join(t.TempDir(), "t.db")

	table, err := Run(env, dir)
	require.NoError(t, err)
	want := models.FrequencyTable{models.GlobalFile: {"the": {"teh": 2, "hte": 1}}}
	assert.Equal(t, want, table)
	assert.Equal(t, want, env.Table)

	persisted, err := (&storage.Storage{TablePath: env.Config.TableFile}).Load()
	require.NoError(t, err)
	assert.Equal(t, want, persisted)

	database, err := db.Open(env.Config.DBPath)
	require.NoError(t, err)
	defer database.Close()
	mirrored, err := database.LoadTable()
	require.NoError(t, err)
	assert.Equal(t, want, mirrored)
}

func TestRunMissingPath(t *testing.T) {
	env := newEnv(t)
	_, err := Run(env, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	assert.NoFileExists(t, env.Config.TableFile)
}
