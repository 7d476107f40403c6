package size

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augur-analysis/augur/pkg/facts"
)

func TestBuckets(t *testing.T) {
	a := New()
	assert.Equal(t, BucketSmall, a.bucketFor(0))
	assert.Equal(t, BucketSmall, a.bucketFor(99))
	assert.Equal(t, BucketMedium, a.bucketFor(100))
	assert.Equal(t, BucketMedium, a.bucketFor(500))
	assert.Equal(t, BucketLarge, a.bucketFor(501))
}

func TestCommentRatio(t *testing.T) {
	assert.Equal(t, 0.0, commentRatio(0, 0))
	assert.Equal(t, 20.0, commentRatio(20, 80))
	assert.Equal(t, 50.0, commentRatio(10, 10))
}

func TestLowDocumentation(t *testing.T) {
	files := []facts.FileFact{
		// Big and uncommented: flagged.
		{Path: "m/bare.py", Module: "m", SLOC: 200, CommentLines: 2},
		// Big and documented: not flagged.
		{Path: "m/doc.py", Module: "m", SLOC: 200, CommentLines: 40},
		// Tiny and uncommented: below the size floor, not flagged.
		{Path: "m/tiny.py", Module: "m", SLOC: 10},
	}

	analysis, err := New().Analyze(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, []string{"m/bare.py"}, analysis.LowDocumentation)
}

func TestModuleAndSummaryAggregation(t *testing.T) {
	files := []facts.FileFact{
		{Path: "a/one.py", Module: "a", SLOC: 90, CommentLines: 10},
		{Path: "a/two.py", Module: "a", SLOC: 600, CommentLines: 0},
		{Path: "b/three.py", Module: "b", SLOC: 150, CommentLines: 50},
	}

	analysis, err := New().Analyze(context.Background(), files)
	require.NoError(t, err)

	a := analysis.Modules["a"]
	require.NotNil(t, a)
	assert.Equal(t, 2, a.Files)
	assert.Equal(t, 690, a.SLOC)
	assert.Equal(t, 1.4, a.CommentRatio) // 10/700

	assert.Equal(t, 3, analysis.Summary.TotalFiles)
	assert.Equal(t, 840, analysis.Summary.TotalSLOC)
	assert.Equal(t, 1, analysis.Summary.Small)
	assert.Equal(t, 1, analysis.Summary.Medium)
	assert.Equal(t, 1, analysis.Summary.Large)
}

func TestDeterministicUnderPermutation(t *testing.T) {
	forward := []facts.FileFact{
		{Path: "a/x.py", Module: "a", SLOC: 10},
		{Path: "b/y.py", Module: "b", SLOC: 20},
	}
	reversed := []facts.FileFact{forward[1], forward[0]}

	first, err := New().Analyze(context.Background(), forward)
	require.NoError(t, err)
	second, err := New().Analyze(context.Background(), reversed)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
