// Package sampler regenerates (derivative, word) rows by drawing a
// replacement derivative from the frequency table.
package sampler

import (
	"fmt"
	"math/rand/v2"

	"github.com/dtnitsch/spell-pseudodata/models"
)

// The uniform policy rolls a die with DrawSides faces. A roll of
// KeepWordMax or less keeps the correct word (3/7); anything higher picks a
// known derivative uniformly (4/7).
const (
	DrawSides   = 7
	KeepWordMax = 3
)

const (
	PolicyUniform  = "uniform"
	PolicyWeighted = "weighted"
)

// Policy chooses the derivative emitted for word. derivatives is never empty.
type Policy interface {
	Choose(rng *rand.Rand, word string, counts models.DerivativeCounts, derivatives []string) string
}

// keepWord is the first stage shared by both policies.
func keepWord(rng *rand.Rand) bool {
	return rng.IntN(DrawSides)+1 <= KeepWordMax
}

// UniformPolicy ignores occurrence counts: every distinct derivative is
// equally likely once the word itself has not been kept.
type UniformPolicy struct{}

func (UniformPolicy) Choose(rng *rand.Rand, word string, _ models.DerivativeCounts, derivatives []string) string {
	if keepWord(rng) {
		return word
	}
	return derivatives[rng.IntN(len(derivatives))]
}

// WeightedPolicy picks derivatives proportionally to their counts in the
// second stage. Only used when asked for explicitly.
type WeightedPolicy struct{}

func (WeightedPolicy) Choose(rng *rand.Rand, word string, counts models.DerivativeCounts, derivatives []string) string {
	if keepWord(rng) {
		return word
	}
	total := 0
	for _, d := range derivatives {
		total += counts[d]
	}
	if total <= 0 {
		return derivatives[rng.IntN(len(derivatives))]
	}
	n := rng.IntN(total)
	for _, d := range derivatives {
		n -= counts[d]
		if n < 0 {
			return d
		}
	}
	return derivatives[len(derivatives)-1]
}

// NewPolicy resolves a policy by name. Empty means uniform.
func NewPolicy(name string) (Policy, error) {
	switch name {
	case "", PolicyUniform:
		return UniformPolicy{}, nil
	case PolicyWeighted:
		return WeightedPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown sampling policy %q", name)
	}
}
