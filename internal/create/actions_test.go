package create

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/spell-pseudodata/internal/common"
	"github.com/dtnitsch/spell-pseudodata/internal/derive"
	"github.com/dtnitsch/spell-pseudodata/internal/human"
	"github.com/dtnitsch/spell-pseudodata/models"
	"github.com/dtnitsch/spell-pseudodata/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	env     *common.Env
	out     *bytes.Buffer
	dataDir string
	workDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	work := t.TempDir()
	data := filepath.Join(work, "data")
	require.NoError(t, os.Mkdir(data, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(data, "f.csv"),
		[]byte("teh,the\nteh,the\nhte,the\nrecieve,receive\n',its\nsolo\n"), 0644))

	cfg := models.DefaultConfig()
	cfg.TableFile = filepath.Join(work, models.DefaultTableFile)
	cfg.ReportFile = filepath.Join(work, models.DefaultReportFile)
	cfg.OutputDir = filepath.Join(work, models.DefaultOutputDir)
	cfg.Seed = 11

	out := &bytes.Buffer{}
	return &fixture{
		env: &common.Env{
			Config: cfg,
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			Out:    out,
		},
		out:     out,
		dataDir: data,
		workDir: work,
	}
}

// fresh returns an Env sharing config but with no in-memory table, as a
// separate invocation would see it.
func (f *fixture) fresh() *common.Env {
	return &common.Env{Config: f.env.Config, Logger: f.env.Logger, Out: f.out}
}

func TestDeriveHumanCreate(t *testing.T) {
	f := newFixture(t)

	table, err := derive.Run(f.env, f.dataDir)
	require.NoError(t, err)
	assert.Equal(t, models.DerivativeCounts{"teh": 2, "hte": 1}, table["f.csv"]["the"])
	assert.NotContains(t, table["f.csv"], "its")
	assert.FileExists(t, f.env.Config.TableFile)
	assert.Contains(t, f.out.String(), "1. teh -> the: 2")

	require.NoError(t, human.Run(f.env))
	report, err := os.ReadFile(f.env.Config.ReportFile)
	require.NoError(t, err)
	assert.Equal(t, "receive,recieve,1\nthe,hte,1,teh,2\n", string(report))

	// Sampling in a later invocation reads the persisted table.
	target := filepath.Join(f.dataDir, "f.csv")
	stats, err := Run(f.fresh(), target)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 6, stats[0].Rows)
	assert.Equal(t, 4, stats[0].Emitted)
	assert.Equal(t, 2, stats[0].Skipped)

	data, err := os.ReadFile(filepath.Join(f.env.Config.OutputDir, "pseudo_f.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	for _, l := range lines[:3] {
		assert.Contains(t, []string{"the,the", "teh,the", "hte,the"}, l)
	}
	assert.Contains(t, []string{"receive,receive", "recieve,receive"}, lines[3])
}

func TestCreateWithoutTable(t *testing.T) {
	f := newFixture(t)

	stats, err := Run(f.env, f.dataDir)
	require.NoError(t, err)
	assert.Nil(t, stats)
	assert.Contains(t, f.out.String(), common.MissingTableMessage)
	assert.NoDirExists(t, f.env.Config.OutputDir)

	require.NoError(t, human.Run(f.fresh()))
	assert.NoFileExists(t, f.env.Config.ReportFile)
}

func TestCreateDirectoryRecordsRuns(t *testing.T) {
	f := newFixture(t)
	f.env.Config.DBPath = filepath.Join(f.workDir, "runs.db")
	require.NoError(t, os.WriteFile(filepath.Join(f.dataDir, "g.csv"), []byte("teh,the\n"), 0644))

	_, err := derive.Run(f.env, f.dataDir)
	require.NoError(t, err)

	// g.csv has its own partition, so "the" resolves there, not in f.csv.
	stats, err := Run(f.env, f.dataDir)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, 1, stats[1].Emitted)

	database, err := db.Open(f.env.Config.DBPath)
	require.NoError(t, err)
	defer database.Close()
	runs, err := database.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, uint64(11), runs[0].Seed)
}

func TestCreateMissingTarget(t *testing.T) {
	f := newFixture(t)
	f.env.Table = models.FrequencyTable{"f.csv": {}}

	_, err := Run(f.env, filepath.Join(f.workDir, "nope"))
	assert.Error(t, err)
}

func TestCreateUnknownFileSkipsAllRows(t *testing.T) {
	f := newFixture(t)
	f.env.Table = models.FrequencyTable{"other.csv": {"the": {"teh": 1}}}

	stats, err := Run(f.env, filepath.Join(f.dataDir, "f.csv"))
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Zero(t, stats[0].Emitted)
}
