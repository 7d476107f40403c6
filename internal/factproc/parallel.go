// Package factproc provides bounded concurrent mapping over file facts.
package factproc

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/augur-analysis/augur/pkg/facts"
)

// DefaultWorkerMultiplier is applied to NumCPU when no worker count is
// configured.
const DefaultWorkerMultiplier = 2

// ProcessingError records a failure for a single file.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ProcessingErrors collects per-file failures (thread-safe).
type ProcessingErrors struct {
	mu     sync.Mutex
	Errors []ProcessingError
}

// Add appends an error to the collection.
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors reports whether any errors were collected.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

// Skipped converts the collected errors into skip records.
func (e *ProcessingErrors) Skipped() []facts.SkippedFile {
	e.mu.Lock()
	defer e.mu.Unlock()
	skipped := make([]facts.SkippedFile, 0, len(e.Errors))
	for _, pe := range e.Errors {
		skipped = append(skipped, facts.SkippedFile{Path: pe.Path, Reason: pe.Err.Error()})
	}
	return skipped
}

func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d files failed to process (first: %v)", len(e.Errors), e.Errors[0])
}

// ProgressFunc is called after each file is processed.
type ProgressFunc func()

// Map processes files in parallel and returns per-file results in input
// order, so reductions over the output are deterministic regardless of
// worker scheduling. Files whose fn returns an error are recorded in the
// returned ProcessingErrors and hold the zero value in the result slice
// with ok=false.
func Map[T any](ctx context.Context, files []facts.FileFact, maxWorkers int, fn func(*facts.FileFact) (T, error)) ([]T, []bool, *ProcessingErrors) {
	return MapWithProgress(ctx, files, maxWorkers, fn, nil)
}

// MapWithProgress is Map with an optional progress callback.
func MapWithProgress[T any](ctx context.Context, files []facts.FileFact, maxWorkers int, fn func(*facts.FileFact) (T, error), onProgress ProgressFunc) ([]T, []bool, *ProcessingErrors) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	results := make([]T, len(files))
	ok := make([]bool, len(files))
	errs := &ProcessingErrors{}

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for i := range files {
		p.Go(func() {
			select {
			case <-ctx.Done():
				errs.Add(files[i].Path, ctx.Err())
				return
			default:
			}

			result, err := fn(&files[i])
			if err != nil {
				errs.Add(files[i].Path, err)
				if onProgress != nil {
					onProgress()
				}
				return
			}

			results[i] = result
			ok[i] = true
			if onProgress != nil {
				onProgress()
			}
		})
	}
	p.Wait()

	if !errs.HasErrors() {
		return results, ok, nil
	}
	return results, ok, errs
}
