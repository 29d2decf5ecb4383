package mapreduce

import (
	"fmt"
	"io"
	"sort"

	"github.com/dtnitsch/spell-pseudodata/models"
)

// Pair is a (word, derivative) observation with its count.
type Pair struct {
	File       string
	Word       string
	Derivative string
	Count      int
}

// TopPairs returns the n most frequent misspellings in the table.
// Self-derivatives (derivative == word) are not misspellings and are left out.
// Ties are broken by word then derivative so output is stable.
func TopPairs(table models.FrequencyTable, n int) []Pair {
	var ps []Pair
	for file, wt := range table {
		for word, counts := range wt {
			for derivative, c := range counts {
				if derivative == word {
					continue
				}
				ps = append(ps, Pair{File: file, Word: word, Derivative: derivative, Count: c})
			}
		}
	}

	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Count != ps[j].Count {
			return ps[i].Count > ps[j].Count
		}
		if ps[i].Word != ps[j].Word {
			return ps[i].Word < ps[j].Word
		}
		if ps[i].Derivative != ps[j].Derivative {
			return ps[i].Derivative < ps[j].Derivative
		}
		return ps[i].File < ps[j].File
	})

	limit := n
	if len(ps) < n {
		limit = len(ps)
	}
	if limit < 0 {
		limit = 0
	}
	return ps[:limit]
}

// PrintTopPairs prints the top n pairs in a numbered list.
func PrintTopPairs(w io.Writer, table models.FrequencyTable, n int) {
	for i, p := range TopPairs(table, n) {
		fmt.Fprintf(w, "%d. %s -> %s: %d (%s)\n", i+1, p.Derivative, p.Word, p.Count, p.File)
	}
}
