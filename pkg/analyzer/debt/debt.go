// Package debt prices the findings of the other analyzers with a
// remediation cost table and derives SQALE-style debt ratios per module.
package debt

import (
	"sort"

	"github.com/augur-analysis/augur/pkg/analyzer"
	"github.com/augur-analysis/augur/pkg/analyzer/cohesion"
	"github.com/augur-analysis/augur/pkg/analyzer/complexity"
	"github.com/augur-analysis/augur/pkg/analyzer/coupling"
	"github.com/augur-analysis/augur/pkg/analyzer/duplicates"
	"github.com/augur-analysis/augur/pkg/analyzer/graph"
	"github.com/augur-analysis/augur/pkg/analyzer/maintainability"
	"github.com/augur-analysis/augur/pkg/analyzer/size"
	"github.com/augur-analysis/augur/pkg/analyzer/smells"
	"github.com/augur-analysis/augur/pkg/config"
)

// hoursPerDay converts remediation hours to working days.
const hoursPerDay = 8

// Inputs are the upstream analyses debt is computed from.
type Inputs struct {
	Complexity      *complexity.Analysis
	Maintainability *maintainability.Analysis
	Smells          *smells.Analysis
	Duplicates      *duplicates.Analysis
	Cohesion        *cohesion.Analysis
	Coupling        *coupling.Analysis
	Graph           *graph.Analysis
	Size            *size.Analysis
}

// Calculator prices issues and derives debt ratios.
type Calculator struct {
	costs        config.Costs
	hoursPerLine float64
	maxFanOut    int
}

// Option is a functional option for configuring Calculator.
type Option func(*Calculator)

// WithConfig applies the cost table and sizing factors.
func WithConfig(cfg *config.Config) Option {
	return func(c *Calculator) {
		c.costs = cfg.Costs
		c.hoursPerLine = cfg.HoursPerLine
		c.maxFanOut = cfg.Thresholds.ModuleFanOut
	}
}

// New creates a new debt calculator.
func New(opts ...Option) *Calculator {
	def := config.Default()
	c := &Calculator{
		costs:        def.Costs,
		hoursPerLine: def.HoursPerLine,
		maxFanOut:    def.Thresholds.ModuleFanOut,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate folds all upstream findings into priced debt per module.
func (c *Calculator) Calculate(in Inputs) *Analysis {
	analysis := &Analysis{
		Modules: make(map[string]*ModuleDebt),
		Summary: Summary{HoursByKind: make(map[string]float64)},
	}

	lowCohesionByModule := make(map[string]int)
	if in.Cohesion != nil {
		for _, cr := range in.Cohesion.LowCohesion {
			lowCohesionByModule[cr.Module]++
		}
	}

	for _, name := range c.moduleNames(in) {
		md := &ModuleDebt{
			Module:      name,
			Issues:      make(map[string]int),
			HoursByKind: make(map[string]float64),
		}
		analysis.Modules[name] = md

		count := func(kind string, n int, cost float64) {
			if n <= 0 {
				return
			}
			md.Issues[kind] = n
			hours := float64(n) * cost
			md.HoursByKind[kind] = analyzer.Round1(hours)
			md.RemediationHours += hours
			analysis.Summary.TotalIssues += n
			analysis.Summary.HoursByKind[kind] += hours
		}

		if in.Complexity != nil {
			if m := in.Complexity.Modules[name]; m != nil {
				count(KindVeryHighComplexity, m.Distribution.VeryComplex, c.costs.VeryHighComplexity)
				count(KindHighComplexity, m.Distribution.Complex, c.costs.HighComplexity)
			}
		}
		if in.Maintainability != nil {
			if m := in.Maintainability.Modules[name]; m != nil {
				count(KindLowMaintainability, m.LowFiles, c.costs.LowMaintainability)
			}
		}
		if in.Smells != nil {
			if m := in.Smells.Modules[name]; m != nil {
				count(KindGodMethod, m.ByKind[smells.KindGodMethod], c.costs.GodMethod)
				count(KindLongMethod, m.ByKind[smells.KindLongMethod], c.costs.LongMethod)
				count(KindLongParameterList, m.ByKind[smells.KindLongParameterList], c.costs.LongParameterList)
				count(KindDeepNesting, m.ByKind[smells.KindDeepNesting], c.costs.DeepNesting)
			}
		}
		if in.Duplicates != nil {
			if m := in.Duplicates.Modules[name]; m != nil {
				count(KindDuplicateCode, m.Pairs, c.costs.DuplicateCode)
			}
		}
		if in.Cohesion != nil {
			if m := in.Cohesion.Modules[name]; m != nil {
				count(KindGodClass, m.GodClasses, c.costs.GodClass)
			}
			count(KindLowCohesion, lowCohesionByModule[name], c.costs.LowCohesion)
		}
		if in.Coupling != nil {
			if m := in.Coupling.Modules[name]; m != nil {
				count(KindOtherTableWrite, m.OtherWrites, c.costs.OtherTableWrite)
				count(KindOtherTableRead, m.OtherReads, c.costs.OtherTableRead)
			}
		}
		if in.Graph != nil {
			if m := in.Graph.Modules[name]; m != nil && m.FanOut > c.maxFanOut {
				count(KindHighFanOut, 1, c.costs.HighFanOut)
			}
		}

		if in.Size != nil {
			if m := in.Size.Modules[name]; m != nil {
				md.DevelopmentHours = float64(m.SLOC) * c.hoursPerLine
			}
		}

		md.DebtRatio = ratio(md.RemediationHours, md.DevelopmentHours)
		md.Rating = RatingFor(md.DebtRatio)
		md.RemediationDays = analyzer.Round1(md.RemediationHours / hoursPerDay)
		analysis.Summary.RemediationHours += md.RemediationHours
		analysis.Summary.DevelopmentHours += md.DevelopmentHours
		md.RemediationHours = analyzer.Round1(md.RemediationHours)
		md.DevelopmentHours = analyzer.Round1(md.DevelopmentHours)
		if len(md.Issues) == 0 {
			md.Issues = nil
			md.HoursByKind = nil
		}
	}

	analysis.Summary.DebtRatio = ratio(analysis.Summary.RemediationHours, analysis.Summary.DevelopmentHours)
	analysis.Summary.Rating = RatingFor(analysis.Summary.DebtRatio)
	analysis.Summary.RemediationDays = analyzer.Round1(analysis.Summary.RemediationHours / hoursPerDay)
	analysis.Summary.RemediationHours = analyzer.Round1(analysis.Summary.RemediationHours)
	analysis.Summary.DevelopmentHours = analyzer.Round1(analysis.Summary.DevelopmentHours)
	for kind, hours := range analysis.Summary.HoursByKind {
		analysis.Summary.HoursByKind[kind] = analyzer.Round1(hours)
	}
	if len(analysis.Summary.HoursByKind) == 0 {
		analysis.Summary.HoursByKind = nil
	}

	return analysis
}

// moduleNames is the sorted union of module keys across all inputs.
func (c *Calculator) moduleNames(in Inputs) []string {
	seen := make(map[string]bool)
	add := func(name string) { seen[name] = true }

	if in.Size != nil {
		for name := range in.Size.Modules {
			add(name)
		}
	}
	if in.Complexity != nil {
		for name := range in.Complexity.Modules {
			add(name)
		}
	}
	if in.Maintainability != nil {
		for name := range in.Maintainability.Modules {
			add(name)
		}
	}
	if in.Smells != nil {
		for name := range in.Smells.Modules {
			add(name)
		}
	}
	if in.Duplicates != nil {
		for name := range in.Duplicates.Modules {
			add(name)
		}
	}
	if in.Cohesion != nil {
		for name := range in.Cohesion.Modules {
			add(name)
		}
	}
	if in.Coupling != nil {
		for name := range in.Coupling.Modules {
			add(name)
		}
	}
	if in.Graph != nil {
		for name := range in.Graph.Modules {
			add(name)
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ratio is remediation as a percentage of development cost. A module with
// no sized code has nothing to compare against and reports 0.
func ratio(remediation, development float64) float64 {
	if development == 0 {
		return 0
	}
	return analyzer.Round1(remediation / development * 100)
}
