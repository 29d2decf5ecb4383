package sampler

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/spell-pseudodata/models"
	"github.com/dtnitsch/spell-pseudodata/pkg/corpus"
)

// Stats counts what a sampling pass did.
type Stats struct {
	File    string
	Output  string
	Rows    int
	Emitted int
	Skipped int
}

// Sampler generates pseudodata from a loaded FrequencyTable. It never
// mutates the table.
type Sampler struct {
	table  models.FrequencyTable
	policy Policy
	rng    *rand.Rand
	Seed   uint64
}

// New creates a Sampler. A zero seed is replaced with a time-derived one,
// available afterwards as Seed.
func New(table models.FrequencyTable, policy Policy, seed uint64) *Sampler {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if policy == nil {
		policy = UniformPolicy{}
	}
	return &Sampler{
		table:  table,
		policy: policy,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Seed:   seed,
	}
}

// wordTable resolves the partition used for file. Global tables answer for
// every file.
func (s *Sampler) wordTable(file string) (models.WordTable, bool) {
	if s.table.IsGlobal() {
		return s.table.Lookup(models.GlobalFile)
	}
	return s.table.Lookup(file)
}

// Row chooses a derivative for one input record. ok is false when the
// record is short or its word is unknown for file; such rows are skipped.
func (s *Sampler) Row(file string, record []string) (derivative, word string, ok bool) {
	if len(record) <= corpus.WordField {
		return "", "", false
	}
	word = record[corpus.WordField]
	wt, found := s.wordTable(file)
	if !found {
		return "", "", false
	}
	derivatives, found := wt.Derivatives(word)
	if !found {
		return "", "", false
	}
	return s.policy.Choose(s.rng, word, wt[word], derivatives), word, true
}

// Generate reads records for file from r and writes "derivative,word"
// lines to w.
func (s *Sampler) Generate(file string, r io.Reader, w io.Writer) (Stats, error) {
	stats := Stats{File: file}
	bw := bufio.NewWriter(w)
	err := corpus.Scan(r, func(record []string) error {
		stats.Rows++
		derivative, word, ok := s.Row(file, record)
		if !ok {
			stats.Skipped++
			return nil
		}
		stats.Emitted++
		return corpus.WriteRecord(bw, []string{derivative, word})
	})
	if err != nil {
		return stats, err
	}
	return stats, bw.Flush()
}

// OutputName is the pseudodata file name for an input file.
func OutputName(prefix, file string) string {
	return prefix + filepath.Base(file)
}

// GenerateFile samples inputPath into outDir, creating outDir if needed and
// truncating any previous output.
func (s *Sampler) GenerateFile(inputPath, outDir, prefix string) (Stats, error) {
	file := filepath.Base(inputPath)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return Stats{File: file}, fmt.Errorf("failed to create output directory: %w", err)
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return Stats{File: file}, fmt.Errorf("failed to open %s: %w", inputPath, err)
	}
	defer in.Close()

	outPath := filepath.Join(outDir, OutputName(prefix, file))
	out, err := os.Create(outPath)
	if err != nil {
		return Stats{File: file}, fmt.Errorf("failed to create %s: %w", outPath, err)
	}

	stats, err := s.Generate(file, in, out)
	stats.Output = outPath
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close %s: %w", outPath, cerr)
	}
	if err != nil {
		return stats, fmt.Errorf("%s: %w", file, err)
	}
	return stats, nil
}
