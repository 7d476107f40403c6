// Package cohesion measures class cohesion: LCOM as the number of
// connected components in the method/attribute sharing graph, weighted
// methods per class, and god-class detection.
package cohesion

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat"

	"github.com/augur-analysis/augur/pkg/analyzer"
	"github.com/augur-analysis/augur/pkg/config"
	"github.com/augur-analysis/augur/pkg/facts"
)

// Ensure Analyzer implements analyzer.FactAnalyzer.
var _ analyzer.FactAnalyzer[*Analysis] = (*Analyzer)(nil)

// Analyzer computes per-class cohesion metrics.
type Analyzer struct {
	maxMethods int
	maxWMC     int
	maxLCOM    int
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithConfig applies class thresholds from the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(a *Analyzer) {
		a.maxMethods = cfg.Thresholds.ClassMethods
		a.maxWMC = cfg.Thresholds.ClassWMC
		a.maxLCOM = cfg.Thresholds.ClassLCOM
	}
}

// New creates a new cohesion analyzer.
func New(opts ...Option) *Analyzer {
	def := config.Default().Thresholds
	a := &Analyzer{
		maxMethods: def.ClassMethods,
		maxWMC:     def.ClassWMC,
		maxLCOM:    def.ClassLCOM,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze computes cohesion for every class in the fact set.
func (a *Analyzer) Analyze(ctx context.Context, files []facts.FileFact) (*Analysis, error) {
	analysis := &Analysis{Modules: make(map[string]*ModuleResult)}
	moduleLCOM := make(map[string][]float64)
	var allLCOM []float64

	for _, i := range facts.SortedIndex(files) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		f := &files[i]
		for k := range f.Classes {
			cr := a.analyzeClass(f, &f.Classes[k])
			analysis.Classes = append(analysis.Classes, cr)
			if cr.LCOM > a.maxLCOM {
				analysis.LowCohesion = append(analysis.LowCohesion, cr)
				analysis.Summary.LowCohesion++
			}
			if cr.GodClass {
				analysis.Summary.GodClasses++
			}

			mod := analysis.Modules[f.Module]
			if mod == nil {
				mod = &ModuleResult{Module: f.Module}
				analysis.Modules[f.Module] = mod
			}
			mod.Classes++
			if cr.GodClass {
				mod.GodClasses++
			}
			moduleLCOM[f.Module] = append(moduleLCOM[f.Module], float64(cr.LCOM))
			allLCOM = append(allLCOM, float64(cr.LCOM))
		}
	}

	for name, mod := range analysis.Modules {
		if values := moduleLCOM[name]; len(values) > 0 {
			mod.AvgLCOM = analyzer.Round1(stat.Mean(values, nil))
		}
	}
	analysis.Summary.TotalClasses = len(analysis.Classes)
	if len(allLCOM) > 0 {
		analysis.Summary.AvgLCOM = analyzer.Round1(stat.Mean(allLCOM, nil))
	}

	return analysis, nil
}

func (a *Analyzer) analyzeClass(f *facts.FileFact, c *facts.ClassFact) ClassResult {
	cr := ClassResult{
		Name:    c.Name,
		File:    f.Path,
		Module:  f.Module,
		Line:    c.StartLine,
		Methods: len(c.Methods),
		LCOM:    lcom(c),
	}
	for i := range c.Methods {
		cr.WMC += c.Methods[i].Cyclomatic()
	}

	if cr.Methods > a.maxMethods {
		cr.Reasons = append(cr.Reasons, fmt.Sprintf("methods %d exceeds %d", cr.Methods, a.maxMethods))
	}
	if cr.WMC > a.maxWMC {
		cr.Reasons = append(cr.Reasons, fmt.Sprintf("wmc %d exceeds %d", cr.WMC, a.maxWMC))
	}
	if cr.LCOM > a.maxLCOM {
		cr.Reasons = append(cr.Reasons, fmt.Sprintf("lcom %d exceeds %d", cr.LCOM, a.maxLCOM))
	}
	cr.GodClass = len(cr.Reasons) > 0

	return cr
}

// lcom counts connected components of the method graph where two methods
// are linked when their attribute sets intersect. Methods touching no
// attributes are isolated components. A class with one method has LCOM 1;
// LCOM never exceeds the method count.
func lcom(c *facts.ClassFact) int {
	if len(c.Methods) == 0 {
		return 0
	}

	g := simple.NewUndirectedGraph()
	nodes := make([]int64, len(c.Methods))
	attrs := make([]map[string]bool, len(c.Methods))
	for i := range c.Methods {
		nodes[i] = int64(i)
		g.AddNode(simple.Node(nodes[i]))
		set := make(map[string]bool)
		for _, attr := range c.AttributeRefs[c.Methods[i].Name] {
			set[attr] = true
		}
		attrs[i] = set
	}

	for i := 0; i < len(c.Methods); i++ {
		for j := i + 1; j < len(c.Methods); j++ {
			if intersects(attrs[i], attrs[j]) {
				g.SetEdge(g.NewEdge(simple.Node(nodes[i]), simple.Node(nodes[j])))
			}
		}
	}

	return len(topo.ConnectedComponents(g))
}

func intersects(a, b map[string]bool) bool {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for attr := range small {
		if large[attr] {
			return true
		}
	}
	return false
}
