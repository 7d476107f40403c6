// Package maintainability computes the maintainability index per file from
// Halstead volume, mean cyclomatic complexity and SLOC.
package maintainability

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/augur-analysis/augur/internal/factproc"
	"github.com/augur-analysis/augur/pkg/analyzer"
	"github.com/augur-analysis/augur/pkg/config"
	"github.com/augur-analysis/augur/pkg/facts"
)

// Ensure Analyzer implements analyzer.FactAnalyzer.
var _ analyzer.FactAnalyzer[*Analysis] = (*Analyzer)(nil)

// Analyzer computes maintainability index values.
type Analyzer struct {
	lowIndex float64
	workers  int
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithConfig applies the maintainability threshold below which a file
// counts as low-maintainability.
func WithConfig(cfg *config.Config) Option {
	return func(a *Analyzer) {
		a.lowIndex = cfg.Thresholds.Maintainability
	}
}

// WithWorkers bounds per-file fan-out (0 = 2x NumCPU).
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.workers = n
	}
}

// New creates a new maintainability analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{lowIndex: config.Default().Thresholds.Maintainability}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze computes the maintainability index for every file.
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
		mod.Files++
		if fr.Index < a.lowIndex {
			mod.LowFiles++
		}
		moduleValues[fr.Module] = append(moduleValues[fr.Module], fr.Index)
		allValues = append(allValues, fr.Index)

		switch fr.Bucket {
		case BucketHigh:
			analysis.Summary.High++
		case BucketModerate:
			analysis.Summary.Moderate++
		default:
			analysis.Summary.Low++
		}
	}

	for name, mod := range analysis.Modules {
		if values := moduleValues[name]; len(values) > 0 {
			mod.AvgIndex = analyzer.Round1(stat.Mean(values, nil))
		}
	}

	analysis.Summary.TotalFiles = len(analysis.Files)
	if len(allValues) > 0 {
		analysis.Summary.AvgIndex = analyzer.Round1(stat.Mean(allValues, nil))
	}

	return analysis, nil
}

func analyzeFile(f *facts.FileFact) FileResult {
	volume := halsteadVolume(f)
	cc := avgComplexity(f)
	mi := index(volume, cc, f.SLOC)

	return FileResult{
		Path:           f.Path,
		Module:         f.Module,
		Index:          analyzer.Round1(mi),
		HalsteadVolume: analyzer.Round1(volume),
		AvgComplexity:  analyzer.Round1(cc),
		SLOC:           f.SLOC,
		Bucket:         BucketFor(mi),
	}
}

// index computes MI = (171 - 5.2*ln(HV) - 0.23*CC - 16.2*ln(LOC)) * 100/171,
// clamped to [0, 100].
func index(volume, complexity float64, sloc int) float64 {
	loc := float64(sloc)
	if loc < 1 {
		loc = 1
	}
	mi := (171 - 5.2*math.Log(volume) - 0.23*complexity - 16.2*math.Log(loc)) * 100 / 171
	if mi < 0 {
		return 0
	}
	if mi > 100 {
		return 100
	}
	return mi
}

// halsteadVolume computes N*log2(n) over the file's combined operator and
// operand tallies, floored at 1 so ln never goes negative.
func halsteadVolume(f *facts.FileFact) float64 {
	var total int
	distinct := make(map[string]bool)
	for i := range f.Functions {
		fn := &f.Functions[i]
		for tok, count := range fn.Operators {
			total += count
			distinct["op:"+tok] = true
		}
		for tok, count := range fn.Operands {
			total += count
			distinct["od:"+tok] = true
		}
	}
	if total == 0 || len(distinct) == 0 {
		return 1
	}
	volume := float64(total) * math.Log2(float64(len(distinct)))
	if volume < 1 {
		return 1
	}
	return volume
}

// avgComplexity is the mean cyclomatic complexity of the file's functions,
// 1 for files with no functions.
func avgComplexity(f *facts.FileFact) float64 {
	if len(f.Functions) == 0 {
		return 1
	}
	var total int
	for i := range f.Functions {
		total += f.Functions[i].Cyclomatic()
	}
	return float64(total) / float64(len(f.Functions))
}
