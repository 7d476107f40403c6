// Package smells flags structural code smells at the function level: long
// methods, long parameter lists, deep nesting and god methods.
package smells

import (
	"context"

	"github.com/augur-analysis/augur/internal/factproc"
	"github.com/augur-analysis/augur/pkg/analyzer"
	"github.com/augur-analysis/augur/pkg/config"
	"github.com/augur-analysis/augur/pkg/facts"
)

// Ensure Analyzer implements analyzer.FactAnalyzer.
var _ analyzer.FactAnalyzer[*Analysis] = (*Analyzer)(nil)

// Analyzer detects function-level smells against configured thresholds.
type Analyzer struct {
	functionSize int
	parameters   int
	nesting      int
	complexity   int
	workers      int
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithConfig applies smell thresholds from the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(a *Analyzer) {
		a.functionSize = cfg.Thresholds.FunctionSize
		a.parameters = cfg.Thresholds.Parameters
		a.nesting = cfg.Thresholds.Nesting
		a.complexity = cfg.Thresholds.Complexity
	}
}

// WithWorkers bounds per-file fan-out (0 = 2x NumCPU).
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.workers = n
	}
}

// New creates a new smells analyzer.
func New(opts ...Option) *Analyzer {
	def := config.Default().Thresholds
	a := &Analyzer{
		functionSize: def.FunctionSize,
		parameters:   def.Parameters,
		nesting:      def.Nesting,
		complexity:   def.Complexity,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze detects smells in every function of the fact set.
func (a *Analyzer) Analyze(ctx context.Context, files []facts.FileFact) (*Analysis, error) {
	results, ok, _ := factproc.Map(ctx, files, a.workers, func(f *facts.FileFact) ([]Smell, error) {
		return a.analyzeFile(f), nil
	})

	analysis := &Analysis{
		Modules: make(map[string]*ModuleResult),
		Summary: Summary{ByKind: make(map[string]int)},
	}
	moduleSLOC := make(map[string]int)

	for _, i := range facts.SortedIndex(files) {
		f := &files[i]
		mod := analysis.Modules[f.Module]
		if mod == nil {
			mod = &ModuleResult{Module: f.Module, ByKind: make(map[string]int)}
			analysis.Modules[f.Module] = mod
		}
		moduleSLOC[f.Module] += f.SLOC

		if !ok[i] {
			continue
		}
		for _, s := range results[i] {
			analysis.Smells = append(analysis.Smells, s)
			analysis.Summary.Total++
			analysis.Summary.ByKind[s.Kind]++
			mod.Count++
			mod.ByKind[s.Kind]++
		}
	}

	var totalSLOC int
	for name, mod := range analysis.Modules {
		mod.SmellsPerKLOC = perKLOC(mod.Count, moduleSLOC[name])
		totalSLOC += moduleSLOC[name]
		if len(mod.ByKind) == 0 {
			mod.ByKind = nil
		}
	}
	analysis.Summary.SmellsPerKLOC = perKLOC(analysis.Summary.Total, totalSLOC)
	if len(analysis.Summary.ByKind) == 0 {
		analysis.Summary.ByKind = nil
	}

	return analysis, nil
}

// analyzeFile returns the smells of one file, in function order.
func (a *Analyzer) analyzeFile(f *facts.FileFact) []Smell {
	var smells []Smell
	for i := range f.Functions {
		fn := &f.Functions[i]
		record := func(kind string, value, threshold int) {
			smells = append(smells, Smell{
				Kind:      kind,
				File:      f.Path,
				Module:    f.Module,
				Function:  fn.Name,
				Line:      fn.StartLine,
				Value:     value,
				Threshold: threshold,
			})
		}

		if lines := fn.Lines(); lines > a.functionSize {
			record(KindLongMethod, lines, a.functionSize)
		}
		if fn.ParamCount > a.parameters {
			record(KindLongParameterList, fn.ParamCount, a.parameters)
		}
		if fn.NestingDepth > a.nesting {
			record(KindDeepNesting, fn.NestingDepth, a.nesting)
		}
		if a.isGodMethod(fn) {
			record(KindGodMethod, fn.Cyclomatic(), 2*a.complexity)
		}
	}
	return smells
}

// isGodMethod flags functions that are both far too branchy and far too
// long: cyclomatic above twice the complexity threshold with a body over
// the long-method limit.
func (a *Analyzer) isGodMethod(fn *facts.FunctionFact) bool {
	return fn.Cyclomatic() > 2*a.complexity && fn.Lines() > a.functionSize
}

// perKLOC scales a count to smells per thousand source lines.
func perKLOC(count, sloc int) float64 {
	if sloc == 0 {
		return 0
	}
	return analyzer.Round1(float64(count) / float64(sloc) * 1000)
}
