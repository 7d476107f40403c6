package factproc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augur-analysis/augur/pkg/facts"
)

func makeFiles(n int) []facts.FileFact {
	files := make([]facts.FileFact, n)
	for i := range files {
		files[i] = facts.FileFact{Path: fmt.Sprintf("mod/file_%03d.py", i), SLOC: i}
	}
	return files
}

func TestMapPreservesInputOrder(t *testing.T) {
	files := makeFiles(100)

	results, ok, errs := Map(context.Background(), files, 8, func(f *facts.FileFact) (string, error) {
		return f.Path, nil
	})

	require.Nil(t, errs)
	require.Len(t, results, 100)
	for i, r := range results {
		assert.Equal(t, files[i].Path, r)
		assert.True(t, ok[i])
	}
}

func TestMapCollectsErrors(t *testing.T) {
	files := makeFiles(10)
	boom := errors.New("bad facts")

	results, ok, errs := Map(context.Background(), files, 4, func(f *facts.FileFact) (int, error) {
		if f.SLOC%3 == 0 {
			return 0, boom
		}
		return f.SLOC, nil
	})

	require.NotNil(t, errs)
	assert.True(t, errs.HasErrors())
	assert.Len(t, errs.Errors, 4) // files 0, 3, 6, 9
	for i := range files {
		if i%3 == 0 {
			assert.False(t, ok[i])
			assert.Zero(t, results[i])
		} else {
			assert.True(t, ok[i])
			assert.Equal(t, i, results[i])
		}
	}
}

func TestMapEmptyInput(t *testing.T) {
	results, ok, errs := Map(context.Background(), nil, 4, func(f *facts.FileFact) (int, error) {
		return 0, nil
	})
	assert.Nil(t, results)
	assert.Nil(t, ok)
	assert.Nil(t, errs)
}

func TestMapContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := makeFiles(20)
	_, ok, errs := Map(ctx, files, 2, func(f *facts.FileFact) (int, error) {
		return f.SLOC, nil
	})

	require.NotNil(t, errs)
	assert.Len(t, errs.Errors, 20)
	for i := range ok {
		assert.False(t, ok[i])
	}
}

func TestMapWithProgressCallsBackPerFile(t *testing.T) {
	files := makeFiles(25)
	var calls atomic.Int64

	_, _, errs := MapWithProgress(context.Background(), files, 4, func(f *facts.FileFact) (int, error) {
		if f.SLOC == 7 {
			return 0, errors.New("bad facts")
		}
		return f.SLOC, nil
	}, func() { calls.Add(1) })

	require.NotNil(t, errs)
	// Failed files still count as processed.
	assert.Equal(t, int64(25), calls.Load())
}

func TestSkippedConversion(t *testing.T) {
	errs := &ProcessingErrors{}
	errs.Add("a.py", errors.New("parse error"))
	errs.Add("b.py", errors.New("timeout"))

	skipped := errs.Skipped()
	require.Len(t, skipped, 2)
	assert.Equal(t, facts.SkippedFile{Path: "a.py", Reason: "parse error"}, skipped[0])
	assert.Equal(t, facts.SkippedFile{Path: "b.py", Reason: "timeout"}, skipped[1])
}

func TestProcessingErrorsMessage(t *testing.T) {
	errs := &ProcessingErrors{}
	assert.Equal(t, "no errors", errs.Error())

	errs.Add("a.py", errors.New("parse error"))
	assert.Equal(t, "a.py: parse error", errs.Error())

	errs.Add("b.py", errors.New("timeout"))
	assert.True(t, strings.HasPrefix(errs.Error(), "2 files failed"))
}
