// Package graph builds the module dependency graph and derives afferent
// and efferent coupling, instability, and dependency cycles.
package graph

import (
	"context"
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/augur-analysis/augur/pkg/analyzer"
	"github.com/augur-analysis/augur/pkg/config"
	"github.com/augur-analysis/augur/pkg/facts"
)

// Ensure Analyzer implements analyzer.FactAnalyzer.
var _ analyzer.FactAnalyzer[*Analysis] = (*Analyzer)(nil)

// Analyzer builds and inspects the module graph.
type Analyzer struct {
	maxFanOut int
	maxFanIn  int
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithConfig applies fan-in/fan-out thresholds.
func WithConfig(cfg *config.Config) Option {
	return func(a *Analyzer) {
		a.maxFanOut = cfg.Thresholds.ModuleFanOut
		a.maxFanIn = cfg.Thresholds.ModuleFanIn
	}
}

// New creates a new graph analyzer.
func New(opts ...Option) *Analyzer {
	def := config.Default().Thresholds
	a := &Analyzer{
		maxFanOut: def.ModuleFanOut,
		maxFanIn:  def.ModuleFanIn,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze builds the dependency graph from import facts.
func (a *Analyzer) Analyze(ctx context.Context, files []facts.FileFact) (*Analysis, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	imports, importedBy := collectEdges(files)

	// All endpoints become nodes: modules with files plus modules only
	// seen as import targets.
	nodeSet := make(map[string]bool)
	for _, m := range facts.Modules(files) {
		nodeSet[m] = true
	}
	for from, tos := range imports {
		nodeSet[from] = true
		for to := range tos {
			nodeSet[to] = true
		}
	}
	names := make([]string, 0, len(nodeSet))
	for name := range nodeSet {
		names = append(names, name)
	}
	sort.Strings(names)

	analysis := &Analysis{Modules: make(map[string]*ModuleResult)}

	ids := make(map[string]int64, len(names))
	g := simple.NewDirectedGraph()
	for i, name := range names {
		ids[name] = int64(i)
		g.AddNode(simple.Node(int64(i)))
	}

	for _, from := range names {
		tos := sortedKeys(imports[from])
		for _, to := range tos {
			g.SetEdge(g.NewEdge(simple.Node(ids[from]), simple.Node(ids[to])))
			analysis.Edges = append(analysis.Edges, Edge{From: from, To: to})
		}

		ca := len(importedBy[from])
		ce := len(tos)
		mr := &ModuleResult{
			Module:      from,
			FanIn:       ca,
			FanOut:      ce,
			Instability: instability(ca, ce),
			Imports:     tos,
			ImportedBy:  sortedKeys(importedBy[from]),
		}
		mr.Category = categoryFor(mr.Instability)
		analysis.Modules[from] = mr

		if ce > a.maxFanOut {
			analysis.Warnings = append(analysis.Warnings, Warning{
				Kind: KindHighFanOut, Module: from, Value: ce, Threshold: a.maxFanOut,
			})
		}
		if ca > a.maxFanIn {
			analysis.Warnings = append(analysis.Warnings, Warning{
				Kind: KindHighFanIn, Module: from, Value: ca, Threshold: a.maxFanIn,
			})
		}
	}

	// A cycle is a strongly connected component with more than one module.
	for _, scc := range topo.TarjanSCC(g) {
		if len(scc) < 2 {
			continue
		}
		cycle := make([]string, 0, len(scc))
		for _, n := range scc {
			cycle = append(cycle, names[n.ID()])
		}
		sort.Strings(cycle)
		analysis.Cycles = append(analysis.Cycles, cycle)
	}
	sort.Slice(analysis.Cycles, func(i, j int) bool {
		return analysis.Cycles[i][0] < analysis.Cycles[j][0]
	})
	for _, cycle := range analysis.Cycles {
		analysis.Warnings = append(analysis.Warnings, Warning{Kind: KindCycle, Cycle: cycle})
	}

	analysis.Summary = Summary{
		Modules: len(analysis.Modules),
		Edges:   len(analysis.Edges),
		Cycles:  len(analysis.Cycles),
	}
	return analysis, nil
}

// collectEdges dedups import relationships in both directions.
func collectEdges(files []facts.FileFact) (imports, importedBy map[string]map[string]bool) {
	imports = make(map[string]map[string]bool)
	importedBy = make(map[string]map[string]bool)
	for i := range files {
		f := &files[i]
		for _, imp := range f.Imports {
			if imp.Module == "" || imp.Module == f.Module {
				continue
			}
			if imports[f.Module] == nil {
				imports[f.Module] = make(map[string]bool)
			}
			imports[f.Module][imp.Module] = true
			if importedBy[imp.Module] == nil {
				importedBy[imp.Module] = make(map[string]bool)
			}
			importedBy[imp.Module][f.Module] = true
		}
	}
	return imports, importedBy
}

// instability is Ce/(Ca+Ce) in [0,1], kept to two decimals. A module with
// no relationships at all is treated as maximally stable: nothing depends
// on it and it depends on nothing, so churn in it cannot propagate.
func instability(ca, ce int) float64 {
	if ca+ce == 0 {
		return 0
	}
	return math.Round(float64(ce)/float64(ca+ce)*100) / 100
}

func categoryFor(i float64) string {
	switch {
	case i < 0.3:
		return CategoryStable
	case i > 0.7:
		return CategoryUnstable
	default:
		return CategoryModerate
	}
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
