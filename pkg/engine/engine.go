// Package engine composes the analyzers into one run over a fact set and
// assembles the full report.
package engine

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc"
	"github.com/zeebo/blake3"

	"github.com/augur-analysis/augur/pkg/analyzer/cohesion"
	"github.com/augur-analysis/augur/pkg/analyzer/complexity"
	"github.com/augur-analysis/augur/pkg/analyzer/coupling"
	"github.com/augur-analysis/augur/pkg/analyzer/debt"
	"github.com/augur-analysis/augur/pkg/analyzer/duplicates"
	"github.com/augur-analysis/augur/pkg/analyzer/graph"
	"github.com/augur-analysis/augur/pkg/analyzer/health"
	"github.com/augur-analysis/augur/pkg/analyzer/maintainability"
	"github.com/augur-analysis/augur/pkg/analyzer/size"
	"github.com/augur-analysis/augur/pkg/analyzer/smells"
	"github.com/augur-analysis/augur/pkg/analyzer/testability"
	"github.com/augur-analysis/augur/pkg/config"
	"github.com/augur-analysis/augur/pkg/facts"
)

// Stage names reported through the progress callback.
var Stages = []string{
	"complexity", "maintainability", "size", "smells", "duplicates",
	"cohesion", "coupling", "graph", "testability", "debt", "health",
}

// ProgressFunc is called as each stage completes.
type ProgressFunc func(stage string, completed, total int)

// Engine runs the full analysis pipeline.
type Engine struct {
	cfg      *config.Config
	progress ProgressFunc
}

// Option is a functional option for configuring Engine.
type Option func(*Engine)

// WithProgress registers a stage-completion callback. The callback may be
// invoked from multiple goroutines, one stage at a time.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) {
		e.progress = fn
	}
}

// New creates an engine with the fixed analyzer pipeline.
func New(cfg *config.Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes every analyzer over the extraction. The file-independent
// analyzers run in parallel; debt and health fold their outputs
// single-threaded. The input is sorted by path once so every downstream
// reduction is order-independent.
func (e *Engine) Run(ctx context.Context, extraction facts.Extraction) (*Result, error) {
	files := make([]facts.FileFact, len(extraction.Files))
	copy(files, extraction.Files)
	facts.SortFiles(files)

	result := &Result{
		Files:   len(files),
		Modules: facts.Modules(files),
		Skipped: extraction.Skipped,
	}

	var (
		mu        sync.Mutex
		completed int
		errs      []error
	)
	done := func(stage string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", stage, err))
		}
		completed++
		if e.progress != nil {
			e.progress(stage, completed, len(Stages))
		}
	}

	workers := e.cfg.Workers
	var wg conc.WaitGroup
	wg.Go(func() {
		a, err := complexity.New(complexity.WithWorkers(workers)).Analyze(ctx, files)
		result.Complexity = a
		done("complexity", err)
	})
	wg.Go(func() {
		a, err := maintainability.New(maintainability.WithConfig(e.cfg), maintainability.WithWorkers(workers)).Analyze(ctx, files)
		result.Maintainability = a
		done("maintainability", err)
	})
	wg.Go(func() {
		a, err := size.New(size.WithConfig(e.cfg)).Analyze(ctx, files)
		result.Size = a
		done("size", err)
	})
	wg.Go(func() {
		a, err := smells.New(smells.WithConfig(e.cfg), smells.WithWorkers(workers)).Analyze(ctx, files)
		result.Smells = a
		done("smells", err)
	})
	wg.Go(func() {
		a, err := duplicates.New(duplicates.WithConfig(e.cfg)).Analyze(ctx, files)
		result.Duplicates = a
		done("duplicates", err)
	})
	wg.Go(func() {
		a, err := cohesion.New(cohesion.WithConfig(e.cfg)).Analyze(ctx, files)
		result.Cohesion = a
		done("cohesion", err)
	})
	wg.Go(func() {
		a, err := coupling.New(coupling.WithConfig(e.cfg)).Analyze(ctx, files)
		result.Coupling = a
		done("coupling", err)
	})
	wg.Go(func() {
		a, err := graph.New(graph.WithConfig(e.cfg)).Analyze(ctx, files)
		result.Graph = a
		done("graph", err)
	})
	wg.Go(func() {
		a, err := testability.New(testability.WithConfig(e.cfg)).Analyze(ctx, files)
		result.Testability = a
		done("testability", err)
	})
	wg.Wait()

	if len(errs) > 0 {
		return nil, errs[0]
	}

	result.Debt = debt.New(debt.WithConfig(e.cfg)).Calculate(debt.Inputs{
		Complexity:      result.Complexity,
		Maintainability: result.Maintainability,
		Smells:          result.Smells,
		Duplicates:      result.Duplicates,
		Cohesion:        result.Cohesion,
		Coupling:        result.Coupling,
		Graph:           result.Graph,
		Size:            result.Size,
	})
	done("debt", nil)

	result.Health = health.New().Score(health.Inputs{
		Complexity:      result.Complexity,
		Maintainability: result.Maintainability,
		Smells:          result.Smells,
		Coupling:        result.Coupling,
		Testability:     result.Testability,
		Debt:            result.Debt,
		Size:            result.Size,
	})
	done("health", nil)

	fingerprint, err := fingerprint(result)
	if err != nil {
		return nil, fmt.Errorf("fingerprinting result: %w", err)
	}
	result.Fingerprint = fingerprint

	return result, nil
}

// fingerprint hashes the canonical JSON encoding of the result (with the
// fingerprint field empty), so two runs over the same facts produce the
// same value and a changed codebase produces a different one.
func fingerprint(r *Result) (string, error) {
	r.Fingerprint = ""
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
