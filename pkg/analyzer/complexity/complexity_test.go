package complexity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augur-analysis/augur/pkg/facts"
)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		cyclomatic int
		want       string
	}{
		{1, BucketSimple},
		{5, BucketSimple},
		{6, BucketModerate},
		{10, BucketModerate},
		{11, BucketComplex},
		{20, BucketComplex},
		{21, BucketVeryComplex},
		{100, BucketVeryComplex},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BucketFor(tt.cyclomatic), "cyclomatic %d", tt.cyclomatic)
	}
}

func TestCyclomaticIsOnePlusDecisionPoints(t *testing.T) {
	files := []facts.FileFact{
		{
			Path:   "billing/invoice.py",
			Module: "billing",
			Functions: []facts.FunctionFact{
				{Name: "total", DecisionPoints: 3, StartLine: 1, EndLine: 12},
				{Name: "format", DecisionPoints: 0, StartLine: 14, EndLine: 20},
			},
		},
	}

	a := New()
	analysis, err := a.Analyze(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, analysis.Files, 1)
	require.Len(t, analysis.Files[0].Functions, 2)

	assert.Equal(t, 4, analysis.Files[0].Functions[0].Cyclomatic)
	assert.Equal(t, 1, analysis.Files[0].Functions[1].Cyclomatic)
	assert.Equal(t, 4, analysis.Summary.MaxCyclomatic)
	assert.Equal(t, 2.5, analysis.Summary.AvgCyclomatic)
}

func TestModuleAggregation(t *testing.T) {
	files := []facts.FileFact{
		{Path: "a/one.py", Module: "a", Functions: []facts.FunctionFact{
			{Name: "f", DecisionPoints: 9},  // cc 10, moderate
			{Name: "g", DecisionPoints: 21}, // cc 22, very complex
		}},
		{Path: "b/two.py", Module: "b", Functions: []facts.FunctionFact{
			{Name: "h", DecisionPoints: 0}, // cc 1, simple
		}},
	}

	analysis, err := New().Analyze(context.Background(), files)
	require.NoError(t, err)

	a := analysis.Modules["a"]
	require.NotNil(t, a)
	assert.Equal(t, 2, a.Functions)
	assert.Equal(t, 16.0, a.AvgCyclomatic)
	assert.Equal(t, 22, a.MaxCyclomatic)
	assert.Equal(t, Distribution{Moderate: 1, VeryComplex: 1}, a.Distribution)

	b := analysis.Modules["b"]
	require.NotNil(t, b)
	assert.Equal(t, Distribution{Simple: 1}, b.Distribution)

	assert.Equal(t, 3, analysis.Summary.TotalFunctions)
	assert.Equal(t, Distribution{Simple: 1, Moderate: 1, VeryComplex: 1}, analysis.Summary.Distribution)
}

func TestDeterministicUnderPermutation(t *testing.T) {
	forward := []facts.FileFact{
		{Path: "m/a.py", Module: "m", Functions: []facts.FunctionFact{{Name: "f", DecisionPoints: 2}}},
		{Path: "m/b.py", Module: "m", Functions: []facts.FunctionFact{{Name: "g", DecisionPoints: 7}}},
		{Path: "n/c.py", Module: "n", Functions: []facts.FunctionFact{{Name: "h", DecisionPoints: 1}}},
	}
	reversed := []facts.FileFact{forward[2], forward[1], forward[0]}

	first, err := New().Analyze(context.Background(), forward)
	require.NoError(t, err)
	second, err := New().Analyze(context.Background(), reversed)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEmptyInput(t *testing.T) {
	analysis, err := New().Analyze(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, analysis.Files)
	assert.Equal(t, 0, analysis.Summary.TotalFunctions)
	assert.Equal(t, 0.0, analysis.Summary.AvgCyclomatic)
}
