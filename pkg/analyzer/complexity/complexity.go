// Package complexity computes per-function cyclomatic complexity and its
// distribution across files and modules.
package complexity

import (
	"context"

	"gonum.org/v1/gonum/stat"

	"github.com/augur-analysis/augur/internal/factproc"
	"github.com/augur-analysis/augur/pkg/analyzer"
	"github.com/augur-analysis/augur/pkg/facts"
)

// Ensure Analyzer implements analyzer.FactAnalyzer.
var _ analyzer.FactAnalyzer[*Analysis] = (*Analyzer)(nil)

// Analyzer computes cyclomatic complexity from recorded decision points.
type Analyzer struct {
	workers int
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithWorkers bounds per-file fan-out (0 = 2x NumCPU).
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.workers = n
	}
}

// New creates a new complexity analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze computes complexity for every function in the fact set.
func (a *Analyzer) Analyze(ctx context.Context, files []facts.FileFact) (*Analysis, error) {
	results, ok, _ := factproc.Map(ctx, files, a.workers, func(f *facts.FileFact) (FileResult, error) {
		return analyzeFile(f), nil
	})

	analysis := &Analysis{Modules: make(map[string]*ModuleResult)}
	moduleValues := make(map[string][]float64)
	var allValues []float64

	for _, i := range facts.SortedIndex(files) {
		if !ok[i] {
			continue
		}
		fr := results[i]
		analysis.Files = append(analysis.Files, fr)

		mod := analysis.Modules[fr.Module]
		if mod == nil {
			mod = &ModuleResult{Module: fr.Module}
			analysis.Modules[fr.Module] = mod
		}
		for _, fn := range fr.Functions {
			mod.Functions++
			mod.Distribution.Add(fn.Cyclomatic)
			analysis.Summary.Distribution.Add(fn.Cyclomatic)
			if fn.Cyclomatic > mod.MaxCyclomatic {
				mod.MaxCyclomatic = fn.Cyclomatic
			}
			if fn.Cyclomatic > analysis.Summary.MaxCyclomatic {
				analysis.Summary.MaxCyclomatic = fn.Cyclomatic
			}
			moduleValues[fr.Module] = append(moduleValues[fr.Module], float64(fn.Cyclomatic))
			allValues = append(allValues, float64(fn.Cyclomatic))
		}
	}

	for name, mod := range analysis.Modules {
		if values := moduleValues[name]; len(values) > 0 {
			mod.AvgCyclomatic = analyzer.Round1(stat.Mean(values, nil))
		}
	}

	analysis.Summary.TotalFiles = len(analysis.Files)
	analysis.Summary.TotalFunctions = len(allValues)
	if len(allValues) > 0 {
		analysis.Summary.AvgCyclomatic = analyzer.Round1(stat.Mean(allValues, nil))
	}

	return analysis, nil
}

func analyzeFile(f *facts.FileFact) FileResult {
	fr := FileResult{Path: f.Path, Module: f.Module}

	for i := range f.Functions {
		fn := &f.Functions[i]
		cc := fn.Cyclomatic()
		fr.Functions = append(fr.Functions, FunctionResult{
			Name:       fn.Name,
			File:       f.Path,
			StartLine:  fn.StartLine,
			Cyclomatic: cc,
			Bucket:     BucketFor(cc),
		})
		fr.TotalCyclomatic += cc
		if cc > fr.MaxCyclomatic {
			fr.MaxCyclomatic = cc
		}
	}

	if len(fr.Functions) > 0 {
		fr.AvgCyclomatic = analyzer.Round1(float64(fr.TotalCyclomatic) / float64(len(fr.Functions)))
	}

	return fr
}
