// Package size reports SLOC, comment ratios and file size distribution.
package size

import (
	"context"

	"github.com/augur-analysis/augur/pkg/analyzer"
	"github.com/augur-analysis/augur/pkg/config"
	"github.com/augur-analysis/augur/pkg/facts"
)

// Ensure Analyzer implements analyzer.FactAnalyzer.
var _ analyzer.FactAnalyzer[*Analysis] = (*Analyzer)(nil)

// minSLOCForDocCheck keeps trivial files out of the low-documentation list.
const minSLOCForDocCheck = 50

// Analyzer computes size metrics.
type Analyzer struct {
	fileSize     int
	commentFloor float64
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithConfig applies the file-size and comment-ratio thresholds.
func WithConfig(cfg *config.Config) Option {
	return func(a *Analyzer) {
		a.fileSize = cfg.Thresholds.FileSize
		a.commentFloor = cfg.Thresholds.CommentRatio
	}
}

// New creates a new size analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		fileSize:     config.Default().Thresholds.FileSize,
		commentFloor: config.Default().Thresholds.CommentRatio,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze computes size metrics for every file.
func (a *Analyzer) Analyze(ctx context.Context, files []facts.FileFact) (*Analysis, error) {
	analysis := &Analysis{Modules: make(map[string]*ModuleResult)}

	for _, i := range facts.SortedIndex(files) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		f := &files[i]
		ratio := commentRatio(f.CommentLines, f.SLOC)
		fr := FileResult{
			Path:         f.Path,
			Module:       f.Module,
			SLOC:         f.SLOC,
			CommentLines: f.CommentLines,
			BlankLines:   f.BlankLines,
			CommentRatio: analyzer.Round1(ratio),
			Bucket:       a.bucketFor(f.SLOC),
		}
		analysis.Files = append(analysis.Files, fr)

		mod := analysis.Modules[f.Module]
		if mod == nil {
			mod = &ModuleResult{Module: f.Module}
			analysis.Modules[f.Module] = mod
		}
		mod.Files++
		mod.SLOC += f.SLOC
		mod.CommentLines += f.CommentLines

		switch fr.Bucket {
		case BucketSmall:
			analysis.Summary.Small++
		case BucketMedium:
			analysis.Summary.Medium++
		default:
			analysis.Summary.Large++
		}
		analysis.Summary.TotalSLOC += f.SLOC

		if f.SLOC > minSLOCForDocCheck && ratio < a.commentFloor {
			analysis.LowDocumentation = append(analysis.LowDocumentation, f.Path)
		}
	}

	var totalComments int
	for _, mod := range analysis.Modules {
		mod.CommentRatio = analyzer.Round1(commentRatio(mod.CommentLines, mod.SLOC))
		totalComments += mod.CommentLines
	}

	analysis.Summary.TotalFiles = len(analysis.Files)
	analysis.Summary.CommentRatio = analyzer.Round1(commentRatio(totalComments, analysis.Summary.TotalSLOC))

	return analysis, nil
}

// bucketFor buckets by SLOC: small below 100, large above the configured
// file-size threshold, medium between.
func (a *Analyzer) bucketFor(sloc int) string {
	switch {
	case sloc < 100:
		return BucketSmall
	case sloc <= a.fileSize:
		return BucketMedium
	default:
		return BucketLarge
	}
}

// commentRatio is comments/(comments+sloc) as a percentage, 0 when the file
// is empty.
func commentRatio(comments, sloc int) float64 {
	total := comments + sloc
	if total == 0 {
		return 0
	}
	return float64(comments) / float64(total) * 100
}
