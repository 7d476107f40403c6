// Package duplicates finds near-duplicate function bodies by comparing
// their operator/operand token multisets. Detection is structural, not
// textual: two functions are duplicates when they use (near) the same
// tokens with the same frequencies, which survives renaming of locals and
// reordering of statements.
package duplicates

import (
	"context"
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cespare/xxhash/v2"

	"github.com/augur-analysis/augur/pkg/analyzer"
	"github.com/augur-analysis/augur/pkg/config"
	"github.com/augur-analysis/augur/pkg/facts"
)

// Ensure Analyzer implements analyzer.FactAnalyzer.
var _ analyzer.FactAnalyzer[*Analysis] = (*Analyzer)(nil)

// lineBound keeps comparisons to blocks of comparable length: the shorter
// block must be at least this fraction of the longer one.
const lineBound = 0.8

// Analyzer detects duplicate function blocks.
type Analyzer struct {
	minLines       int
	similarity     float64
	maxComparisons int
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithConfig applies duplicate-detection settings.
func WithConfig(cfg *config.Config) Option {
	return func(a *Analyzer) {
		a.minLines = cfg.Duplicates.MinLines
		a.similarity = cfg.Duplicates.Similarity
		a.maxComparisons = cfg.Duplicates.MaxComparisons
	}
}

// New creates a new duplicates analyzer.
func New(opts ...Option) *Analyzer {
	def := config.Default().Duplicates
	a := &Analyzer{
		minLines:       def.MinLines,
		similarity:     def.Similarity,
		maxComparisons: def.MaxComparisons,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// block is one candidate: a function body big enough to matter.
type block struct {
	ref         BlockRef
	lines       int
	tokens      map[string]int
	totalTokens int
	fingerprint uint64
}

// Analyze compares all candidate blocks pairwise. Blocks are gathered in
// path order and compared sequentially, so results are identical run to
// run even when the comparison cap cuts the scan short.
func (a *Analyzer) Analyze(ctx context.Context, files []facts.FileFact) (*Analysis, error) {
	analysis := &Analysis{Modules: make(map[string]*ModuleResult)}

	blocks := a.collectBlocks(files)
	analysis.Summary.Blocks = len(blocks)

	fileLines := make(map[string]*roaring.Bitmap)
	for i := 0; i < len(blocks); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		for j := i + 1; j < len(blocks); j++ {
			if a.maxComparisons > 0 && analysis.Summary.Comparisons >= a.maxComparisons {
				analysis.Summary.Capped = true
				break
			}
			bi, bj := &blocks[i], &blocks[j]
			if !withinLineBound(bi.lines, bj.lines) {
				continue
			}
			analysis.Summary.Comparisons++

			sim := 1.0
			if bi.fingerprint != bj.fingerprint {
				sim = diceSimilarity(bi, bj)
			}
			if sim < a.similarity {
				continue
			}

			analysis.Pairs = append(analysis.Pairs, Pair{
				A:          bi.ref,
				B:          bj.ref,
				Similarity: analyzer.Round1(sim * 100),
			})
			markLines(fileLines, bi.ref)
			markLines(fileLines, bj.ref)
		}
		if analysis.Summary.Capped {
			break
		}
	}
	analysis.Summary.Pairs = len(analysis.Pairs)

	a.aggregate(analysis, files, fileLines)
	return analysis, nil
}

// collectBlocks gathers candidate blocks in path order. Functions shorter
// than the minimum or with no recorded tokens are skipped.
func (a *Analyzer) collectBlocks(files []facts.FileFact) []block {
	var blocks []block
	for _, i := range facts.SortedIndex(files) {
		f := &files[i]
		for k := range f.Functions {
			fn := &f.Functions[k]
			if fn.Lines() < a.minLines {
				continue
			}
			tokens, total := tokenMultiset(fn)
			if total == 0 {
				continue
			}
			blocks = append(blocks, block{
				ref: BlockRef{
					File:      f.Path,
					Module:    f.Module,
					Function:  fn.Name,
					StartLine: fn.StartLine,
					EndLine:   fn.EndLine,
				},
				lines:       fn.Lines(),
				tokens:      tokens,
				totalTokens: total,
				fingerprint: fingerprint(tokens),
			})
		}
	}
	return blocks
}

func (a *Analyzer) aggregate(analysis *Analysis, files []facts.FileFact, fileLines map[string]*roaring.Bitmap) {
	moduleDup := make(map[string]int)
	moduleSLOC := make(map[string]int)

	for _, i := range facts.SortedIndex(files) {
		f := &files[i]
		if analysis.Modules[f.Module] == nil {
			analysis.Modules[f.Module] = &ModuleResult{Module: f.Module}
		}
		moduleSLOC[f.Module] += f.SLOC

		bm := fileLines[f.Path]
		if bm == nil {
			continue
		}
		dup := int(bm.GetCardinality())
		analysis.Files = append(analysis.Files, FileResult{
			Path:             f.Path,
			Module:           f.Module,
			DuplicatedLines:  dup,
			DuplicationRatio: ratio(dup, f.SLOC),
		})
		moduleDup[f.Module] += dup
	}

	for _, p := range analysis.Pairs {
		analysis.Modules[p.A.Module].Pairs++
		if p.B.Module != p.A.Module {
			analysis.Modules[p.B.Module].Pairs++
		}
	}

	var totalDup, totalSLOC int
	for name, mod := range analysis.Modules {
		mod.DuplicatedLines = moduleDup[name]
		mod.DuplicationRatio = ratio(moduleDup[name], moduleSLOC[name])
		totalDup += moduleDup[name]
		totalSLOC += moduleSLOC[name]
	}
	analysis.Summary.DuplicationRatio = ratio(totalDup, totalSLOC)
}

// tokenMultiset merges a function's operator and operand tallies into one
// namespaced multiset.
func tokenMultiset(fn *facts.FunctionFact) (map[string]int, int) {
	tokens := make(map[string]int, len(fn.Operators)+len(fn.Operands))
	var total int
	for tok, count := range fn.Operators {
		tokens["op:"+tok] += count
		total += count
	}
	for tok, count := range fn.Operands {
		tokens["od:"+tok] += count
		total += count
	}
	return tokens, total
}

// fingerprint hashes the canonical token/count listing so identical blocks
// skip the multiset comparison.
func fingerprint(tokens map[string]int) uint64 {
	keys := make([]string, 0, len(tokens))
	for tok := range tokens {
		keys = append(keys, tok)
	}
	sort.Strings(keys)

	h := xxhash.New()
	for _, tok := range keys {
		fmt.Fprintf(h, "%s=%d;", tok, tokens[tok])
	}
	return h.Sum64()
}

// diceSimilarity is the Dice coefficient over two token multisets:
// 2*sum(min(a,b)) / (|a|+|b|).
func diceSimilarity(a, b *block) float64 {
	if a.totalTokens+b.totalTokens == 0 {
		return 0
	}
	var shared int
	small, large := a, b
	if len(b.tokens) < len(a.tokens) {
		small, large = b, a
	}
	for tok, ca := range small.tokens {
		if cb, found := large.tokens[tok]; found {
			shared += min(ca, cb)
		}
	}
	return 2 * float64(shared) / float64(a.totalTokens+b.totalTokens)
}

func withinLineBound(a, b int) bool {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return float64(lo) >= lineBound*float64(hi)
}

// markLines records a block's line span in its file's duplicated-line set.
// The bitmap keeps overlapping pairs from double counting.
func markLines(fileLines map[string]*roaring.Bitmap, ref BlockRef) {
	bm := fileLines[ref.File]
	if bm == nil {
		bm = roaring.New()
		fileLines[ref.File] = bm
	}
	bm.AddRange(uint64(ref.StartLine), uint64(ref.EndLine)+1)
}

// ratio is duplicated/total lines as a percentage, capped at 100.
func ratio(dup, sloc int) float64 {
	if sloc == 0 {
		return 0
	}
	r := float64(dup) / float64(sloc) * 100
	if r > 100 {
		r = 100
	}
	return analyzer.Round1(r)
}
