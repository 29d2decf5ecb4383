package mapreduce

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/spell-pseudodata/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestMap(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		want   bool
	}{
		{name: "pair", record: []string{"teh", "the"}, want: true},
		{name: "self derivative", record: []string{"the", "the"}, want: true},
		{name: "short row", record: []string{"teh"}, want: false},
		{name: "apostrophe derivative", record: []string{"'", "it's"}, want: false},
		{name: "apostrophe inside derivative", record: []string{"its'", "it's"}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wt := make(models.WordTable)
			assert.Equal(t, tt.want, Map(wt, tt.record))
			if !tt.want {
				assert.Empty(t, wt)
			}
		})
	}
}

func TestAggregateScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "f.csv", "teh,the\nteh,the\nhte,the\n")

	table, stats, err := Aggregate(dir, []string{"f.csv"}, models.PartitionFile)
	require.NoError(t, err)
	assert.Equal(t, models.DerivativeCounts{"teh": 2, "hte": 1}, table["f.csv"]["the"])
	require.Len(t, stats, 1)
	assert.Equal(t, FileStats{File: "f.csv", Rows: 3, Counted: 3}, stats[0])
}

func TestAggregateCountsMatchRows(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "teh,the\nthe,the\nteh,the\n',dont\ndnot,dont\nsolo\n")
	writeFile(t, dir, "b.csv", "teh,the\nrecieve,receive\n")

	table, stats, err := Aggregate(dir, []string{"a.csv", "b.csv"}, models.PartitionFile)
	require.NoError(t, err)

	assert.Equal(t, models.FrequencyTable{
		"a.csv": {
			"the":  {"teh": 2, "the": 1},
			"dont": {"dnot": 1},
		},
		"b.csv": {
			"the":     {"teh": 1},
			"receive": {"recieve": 1},
		},
	}, table)
	assert.Equal(t, 2, stats[0].Skipped)
}

func TestAggregateFileOrderIndependent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "teh,the\nhte,the\n")
	writeFile(t, dir, "b.csv", "teh,the\n")

	for _, partition := range []models.Partition{models.PartitionFile, models.PartitionGlobal} {
		t.Run(string(partition), func(t *testing.T) {
			forward, _, err := Aggregate(dir, []string{"a.csv", "b.csv"}, partition)
			require.NoError(t, err)
			backward, _, err := Aggregate(dir, []string{"b.csv", "a.csv"}, partition)
			require.NoError(t, err)
			assert.Equal(t, forward, backward)
		})
	}
}

func TestAggregateGlobal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "teh,the\n")
	writeFile(t, dir, "b.csv", "teh,the\nhte,the\n")

	table, _, err := Aggregate(dir, []string{"a.csv", "b.csv"}, models.PartitionGlobal)
	require.NoError(t, err)
	assert.True(t, table.IsGlobal())
	assert.Equal(t, models.DerivativeCounts{"teh": 2, "hte": 1}, table[models.GlobalFile]["the"])
}

func TestAggregateDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "f.csv", "teh,the\nhte,the\nteh,the\n")

	first, _, err := Aggregate(dir, []string{"f.csv"}, models.PartitionFile)
	require.NoError(t, err)
	second, _, err := Aggregate(dir, []string{"f.csv"}, models.PartitionFile)
	require.NoError(t, err)
	assert.Equal(t, first, second, "a fresh table per run must reproduce the same counts")

	// Merging two runs equals aggregating the input concatenated once.
	writeFile(t, dir, "f.csv", "teh,the\nhte,the\nteh,the\nteh,the\nhte,the\nteh,the\n")
	doubled, _, err := Aggregate(dir, []string{"f.csv"}, models.PartitionFile)
	require.NoError(t, err)
	assert.Equal(t, doubled, Reduce(first, second))
}

func TestAggregateMissingFile(t *testing.T) {
	_, _, err := Aggregate(t.TempDir(), []string{"missing.csv"}, models.PartitionFile)
	assert.Error(t, err)
}

func TestTopPairs(t *testing.T) {
	table := models.FrequencyTable{
		"a.csv": {
			"the":     {"teh": 5, "the": 9, "hte": 2},
			"receive": {"recieve": 5},
		},
	}

	got := TopPairs(table, 2)
	assert.Equal(t, []Pair{
		{File: "a.csv", Word: "receive", Derivative: "recieve", Count: 5},
		{File: "a.csv", Word: "the", Derivative: "teh", Count: 5},
	}, got)

	assert.Len(t, TopPairs(table, 10), 3)
	assert.Empty(t, TopPairs(table, -1))
}
