package maintainability

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augur-analysis/augur/pkg/config"
	"github.com/augur-analysis/augur/pkg/facts"
)

func TestIndexBounds(t *testing.T) {
	// Tiny file with no tokens stays near the top of the scale.
	assert.InDelta(t, 100.0, index(1, 0, 1), 0.1)

	// Huge volume and complexity bottoms out at zero, never negative.
	assert.Equal(t, 0.0, index(1e12, 500, 100000))
}

func TestBucketFor(t *testing.T) {
	assert.Equal(t, BucketHigh, BucketFor(65))
	assert.Equal(t, BucketHigh, BucketFor(100))
	assert.Equal(t, BucketModerate, BucketFor(64.9))
	assert.Equal(t, BucketModerate, BucketFor(20))
	assert.Equal(t, BucketLow, BucketFor(19.9))
	assert.Equal(t, BucketLow, BucketFor(0))
}

func TestHalsteadVolume(t *testing.T) {
	f := &facts.FileFact{
		Functions: []facts.FunctionFact{
			{
				Operators: map[string]int{"+": 3, "=": 2},
				Operands:  map[string]int{"x": 4, "y": 1},
			},
		},
	}

	// N=10 occurrences over n=4 distinct tokens: 10 * log2(4) = 20.
	assert.InDelta(t, 20.0, halsteadVolume(f), 1e-9)

	// No tokens floors at 1 so ln(HV) is defined.
	assert.Equal(t, 1.0, halsteadVolume(&facts.FileFact{}))
}

func TestAnalyzeFileUsesAvgFunctionComplexity(t *testing.T) {
	f := &facts.FileFact{
		Path:   "orders/pricing.py",
		Module: "orders",
		SLOC:   40,
		Functions: []facts.FunctionFact{
			{Name: "a", DecisionPoints: 1}, // cc 2
			{Name: "b", DecisionPoints: 5}, // cc 6
		},
	}

	fr := analyzeFile(f)
	assert.Equal(t, 4.0, fr.AvgComplexity)

	want := (171 - 5.2*math.Log(1) - 0.23*4 - 16.2*math.Log(40)) * 100 / 171
	assert.InDelta(t, want, fr.Index, 0.05)
}

func TestModuleAggregation(t *testing.T) {
	files := []facts.FileFact{
		{Path: "m/small.py", Module: "m", SLOC: 10},
		{Path: "m/huge.py", Module: "m", SLOC: 50000, Functions: []facts.FunctionFact{
			{Name: "f", DecisionPoints: 300, Operators: map[string]int{"+": 5000}, Operands: map[string]int{"x": 5000}},
		}},
	}

	analysis, err := New().Analyze(context.Background(), files)
	require.NoError(t, err)

	mod := analysis.Modules["m"]
	require.NotNil(t, mod)
	assert.Equal(t, 2, mod.Files)
	assert.Equal(t, 1, mod.LowFiles)
	assert.Equal(t, 2, analysis.Summary.TotalFiles)
	assert.Equal(t, 1, analysis.Summary.Low)
	assert.Equal(t, 1, analysis.Summary.High)
}

func TestConfiguredThresholdDrivesLowFiles(t *testing.T) {
	// SLOC 300 with no tokens lands in the moderate bucket (index ~44),
	// above the default threshold but below a raised one.
	files := []facts.FileFact{
		{Path: "m/mid.py", Module: "m", SLOC: 300},
	}

	analysis, err := New().Analyze(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, 0, analysis.Modules["m"].LowFiles)

	cfg := config.Default()
	cfg.Thresholds.Maintainability = 80
	analysis, err = New(WithConfig(cfg)).Analyze(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, 1, analysis.Modules["m"].LowFiles)
}

func TestDeterministicUnderPermutation(t *testing.T) {
	forward := []facts.FileFact{
		{Path: "a/x.py", Module: "a", SLOC: 100},
		{Path: "b/y.py", Module: "b", SLOC: 300},
	}
	reversed := []facts.FileFact{forward[1], forward[0]}

	first, err := New().Analyze(context.Background(), forward)
	require.NoError(t, err)
	second, err := New().Analyze(context.Background(), reversed)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
