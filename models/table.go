// Package models defines the derivative frequency table and runtime configuration.
package models

import "sort"

// GlobalFile is the file key used when derivatives are tracked across all
// input files instead of per file.
const GlobalFile = "*"

// DerivativeCounts maps an observed form of a word to its occurrence count.
type DerivativeCounts map[string]int

// WordTable maps a correct word to the derivatives observed for it.
type WordTable map[string]DerivativeCounts

// FrequencyTable maps a source file identifier to its WordTable.
type FrequencyTable map[string]WordTable

// Observe records one occurrence of derivative for word.
// Counts start at 1 and are only ever incremented.
func (wt WordTable) Observe(derivative, word string) {
	counts, ok := wt[word]
	if !ok {
		wt[word] = DerivativeCounts{derivative: 1}
		return
	}
	counts[derivative]++
}

// Derivatives returns the known derivatives of word in sorted order.
// The second result is false when the word was never observed.
func (wt WordTable) Derivatives(word string) ([]string, bool) {
	counts, ok := wt[word]
	if !ok || len(counts) == 0 {
		return nil, false
	}
	return counts.Keys(), true
}

// Keys returns the derivative strings in sorted order.
func (dc DerivativeCounts) Keys() []string {
	keys := make([]string, 0, len(dc))
	for k := range dc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Total returns the sum of all counts.
func (dc DerivativeCounts) Total() int {
	total := 0
	for _, c := range dc {
		total += c
	}
	return total
}

// File returns the WordTable for file, creating it if needed.
func (ft FrequencyTable) File(file string) WordTable {
	wt, ok := ft[file]
	if !ok {
		wt = make(WordTable)
		ft[file] = wt
	}
	return wt
}

// Lookup returns the WordTable for file without creating it.
func (ft FrequencyTable) Lookup(file string) (WordTable, bool) {
	wt, ok := ft[file]
	return wt, ok
}

// Files returns the file keys in sorted order.
func (ft FrequencyTable) Files() []string {
	files := make([]string, 0, len(ft))
	for f := range ft {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Words returns the words of the table in sorted order.
func (wt WordTable) Words() []string {
	words := make([]string, 0, len(wt))
	for w := range wt {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Pairs returns the number of distinct (word, derivative) pairs across all files.
func (ft FrequencyTable) Pairs() int {
	n := 0
	for _, wt := range ft {
		for _, counts := range wt {
			n += len(counts)
		}
	}
	return n
}

// IsGlobal reports whether the table was built with a single shared partition.
func (ft FrequencyTable) IsGlobal() bool {
	_, ok := ft[GlobalFile]
	return ok && len(ft) == 1
}
