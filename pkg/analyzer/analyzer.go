// Package analyzer defines the contract every metrics analyzer implements.
package analyzer

import (
	"context"
	"math"

	"github.com/augur-analysis/augur/pkg/facts"
)

// FactAnalyzer is the interface all fact-based analyzers implement. The
// engine composes a fixed list of these; analyzers are pure functions of
// the fact set plus configuration and never mutate their input.
type FactAnalyzer[T any] interface {
	// Analyze processes a fact set and returns the typed analysis result.
	// Implementations must produce identical results for any permutation
	// of the input files.
	Analyze(ctx context.Context, files []facts.FileFact) (T, error)
}

// Round1 rounds to one decimal place. Every float aggregate in a result is
// rounded through this before it is exposed, so a serialized report decodes
// to numerically identical values.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
