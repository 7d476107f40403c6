// Package testability classifies test files as unit or integration and
// scores how testable each module's production code is. A branching
// function that also touches data needs an integration harness to cover;
// the score is the share of branching functions that do not.
package testability

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/augur-analysis/augur/pkg/analyzer"
	"github.com/augur-analysis/augur/pkg/config"
	"github.com/augur-analysis/augur/pkg/facts"
)

// Ensure Analyzer implements analyzer.FactAnalyzer.
var _ analyzer.FactAnalyzer[*Analysis] = (*Analyzer)(nil)

// Analyzer classifies tests and computes testability scores.
type Analyzer struct {
	dataModules map[string]bool
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithConfig applies the data-access module markers.
func WithConfig(cfg *config.Config) Option {
	return func(a *Analyzer) {
		a.dataModules = toSet(cfg.Coupling.DataAccessModules)
	}
}

// New creates a new testability analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{dataModules: toSet(config.Default().Coupling.DataAccessModules)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// IsTestFile reports whether a path names a test file: the base name
// starts with "test_" or ends with "_test" before the extension.
func IsTestFile(filePath string) bool {
	base := path.Base(filePath)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return strings.HasPrefix(base, "test_") || strings.HasSuffix(base, "_test")
}

// Analyze classifies every test file and scores each module.
func (a *Analyzer) Analyze(ctx context.Context, files []facts.FileFact) (*Analysis, error) {
	analysis := &Analysis{Modules: make(map[string]*ModuleResult)}

	for _, i := range facts.SortedIndex(files) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		f := &files[i]
		mod := analysis.Modules[f.Module]
		if mod == nil {
			mod = &ModuleResult{Module: f.Module}
			analysis.Modules[f.Module] = mod
		}

		if IsTestFile(f.Path) {
			a.classifyTestFile(analysis, f)
			continue
		}

		for k := range f.Functions {
			fn := &f.Functions[k]
			if fn.DecisionPoints == 0 {
				continue
			}
			mod.BranchingFunctions++
			if hasDataCall(fn) {
				mod.MixedFunctions++
			}
		}
	}

	var totalBranching, totalMixed, unitFns, integrationFns int
	for _, mod := range analysis.Modules {
		mod.Score = score(mod.BranchingFunctions, mod.MixedFunctions)
		totalBranching += mod.BranchingFunctions
		totalMixed += mod.MixedFunctions
		unitFns += mod.UnitFunctions
		integrationFns += mod.IntegrationFunctions
	}

	analysis.Summary.TestFiles = len(analysis.TestFiles)
	analysis.Summary.Score = score(totalBranching, totalMixed)
	if total := unitFns + integrationFns; total > 0 {
		analysis.Summary.UnitPercent = analyzer.Round1(float64(unitFns) / float64(total) * 100)
		analysis.Summary.IntegrationPercent = analyzer.Round1(float64(integrationFns) / float64(total) * 100)
	}

	return analysis, nil
}

// classifyTestFile decides unit vs integration and attributes the test to
// the module it mostly imports from.
func (a *Analyzer) classifyTestFile(analysis *Analysis, f *facts.FileFact) {
	kind := KindUnit
	if a.isIntegration(f) {
		kind = KindIntegration
	}

	module := a.attributeModule(f)
	mod := analysis.Modules[module]
	if mod == nil {
		mod = &ModuleResult{Module: module}
		analysis.Modules[module] = mod
	}

	fns := len(f.Functions)
	if kind == KindUnit {
		mod.UnitTests++
		mod.UnitFunctions += fns
		analysis.Summary.UnitTests++
	} else {
		mod.IntegrationTests++
		mod.IntegrationFunctions += fns
		analysis.Summary.IntegrationTests++
	}

	analysis.TestFiles = append(analysis.TestFiles, TestFile{
		Path:      f.Path,
		Module:    module,
		Kind:      kind,
		Functions: fns,
	})
}

// isIntegration: any data-access import marker or any recorded data call
// makes the file an integration test.
func (a *Analyzer) isIntegration(f *facts.FileFact) bool {
	if len(f.Calls) > 0 {
		return true
	}
	for _, imp := range f.Imports {
		if a.dataModules[strings.ToLower(imp.Module)] || a.dataModules[strings.ToLower(imp.Imported)] {
			return true
		}
	}
	return false
}

// attributeModule picks the module a test exercises: the majority module
// among its resolved imports, ties broken by name, falling back to the
// folder the test lives in.
func (a *Analyzer) attributeModule(f *facts.FileFact) string {
	votes := make(map[string]int)
	for _, imp := range f.Imports {
		if imp.Module == "" || a.dataModules[strings.ToLower(imp.Module)] {
			continue
		}
		votes[imp.Module]++
	}
	if len(votes) == 0 {
		return f.Module
	}

	candidates := make([]string, 0, len(votes))
	for m := range votes {
		candidates = append(candidates, m)
	}
	sort.Strings(candidates)

	best := candidates[0]
	for _, m := range candidates[1:] {
		if votes[m] > votes[best] {
			best = m
		}
	}
	return best
}

// hasDataCall ignores call facts without a collection; they carry no
// data-access information.
func hasDataCall(fn *facts.FunctionFact) bool {
	for _, call := range fn.Calls {
		if call.Collection != "" {
			return true
		}
	}
	return false
}

// score is (branching - mixed) / branching as a percentage, 100 when the
// module has no branching functions at all.
func score(branching, mixed int) float64 {
	if branching == 0 {
		return 100
	}
	return analyzer.Round1(float64(branching-mixed) / float64(branching) * 100)
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
