// Package health folds every analysis axis into one weighted 0-100 score
// per module and ranks modules worst-first for triage.
package health

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/augur-analysis/augur/pkg/analyzer"
	"github.com/augur-analysis/augur/pkg/analyzer/complexity"
	"github.com/augur-analysis/augur/pkg/analyzer/coupling"
	"github.com/augur-analysis/augur/pkg/analyzer/debt"
	"github.com/augur-analysis/augur/pkg/analyzer/maintainability"
	"github.com/augur-analysis/augur/pkg/analyzer/size"
	"github.com/augur-analysis/augur/pkg/analyzer/smells"
	"github.com/augur-analysis/augur/pkg/analyzer/testability"
)

// Component weights. Coupling dominates: a module that writes into other
// modules' tables drags the whole architecture with it, where local
// complexity stays local.
const (
	weightCoupling        = 0.30
	weightComplexity      = 0.20
	weightMaintainability = 0.20
	weightTestability     = 0.15
	weightSmells          = 0.10
	weightDebt            = 0.05
)

// Inputs are the upstream analyses the composite is computed from. Size
// decides which modules get scored at all.
type Inputs struct {
	Complexity      *complexity.Analysis
	Maintainability *maintainability.Analysis
	Smells          *smells.Analysis
	Coupling        *coupling.Analysis
	Testability     *testability.Analysis
	Debt            *debt.Analysis
	Size            *size.Analysis
}

// Scorer computes composite health.
type Scorer struct{}

// New creates a new health scorer.
func New() *Scorer {
	return &Scorer{}
}

// Score computes each module's composite health and the rankings.
func (s *Scorer) Score(in Inputs) *Analysis {
	analysis := &Analysis{Modules: make(map[string]*ModuleHealth)}

	var scored []string
	var scores []float64
	for _, name := range moduleNames(in) {
		// A module with no counted source lines (present only through
		// test-file attribution) would carry default components and
		// inflate the mean.
		if !hasSizedCode(name, in.Size) {
			continue
		}
		mh := s.scoreModule(name, in)
		analysis.Modules[name] = mh
		scored = append(scored, name)
		scores = append(scores, mh.Score)
	}

	analysis.Rankings = buildRankings(scored, analysis.Modules, in)

	if len(scores) > 0 {
		analysis.Summary.OverallHealth = analyzer.Round1(stat.Mean(scores, nil))
		analysis.Summary.Category = CategoryFor(analysis.Summary.OverallHealth)
		byHealth := analysis.Rankings.ByHealth
		analysis.Summary.WorstModule = byHealth[0].Module
		analysis.Summary.BestModule = byHealth[len(byHealth)-1].Module
	} else {
		analysis.Summary.Category = CategoryFor(0)
	}

	return analysis
}

func (s *Scorer) scoreModule(name string, in Inputs) *ModuleHealth {
	c := Components{
		Coupling:        100,
		Complexity:      100,
		Maintainability: 100,
		Testability:     100,
		Smells:          100,
		Debt:            100,
	}

	if in.Coupling != nil {
		if m := in.Coupling.Modules[name]; m != nil {
			c.Coupling = normalizeCoupling(m.Severity)
		}
	}
	if in.Complexity != nil {
		if m := in.Complexity.Modules[name]; m != nil && m.Functions > 0 {
			c.Complexity = normalizeComplexity(m.AvgCyclomatic)
		}
	}
	if in.Maintainability != nil {
		if m := in.Maintainability.Modules[name]; m != nil && m.Files > 0 {
			c.Maintainability = normalizeMaintainability(m.AvgIndex)
		}
	}
	if in.Testability != nil {
		if m := in.Testability.Modules[name]; m != nil {
			c.Testability = normalizeTestability(m.Score)
		}
	}
	if in.Smells != nil {
		if m := in.Smells.Modules[name]; m != nil {
			c.Smells = normalizeSmells(m.SmellsPerKLOC)
		}
	}
	if in.Debt != nil {
		if m := in.Debt.Modules[name]; m != nil {
			c.Debt = normalizeDebt(m.DebtRatio)
		}
	}

	score := clamp(c.Coupling*weightCoupling +
		c.Complexity*weightComplexity +
		c.Maintainability*weightMaintainability +
		c.Testability*weightTestability +
		c.Smells*weightSmells +
		c.Debt*weightDebt)
	score = analyzer.Round1(score)

	return &ModuleHealth{
		Module:   name,
		Score:    score,
		Category: CategoryFor(score),
		Components: Components{
			Coupling:        analyzer.Round1(c.Coupling),
			Complexity:      analyzer.Round1(c.Complexity),
			Maintainability: analyzer.Round1(c.Maintainability),
			Testability:     analyzer.Round1(c.Testability),
			Smells:          analyzer.Round1(c.Smells),
			Debt:            analyzer.Round1(c.Debt),
		},
	}
}

// buildRankings orders modules worst-first on each axis, ties broken by
// module name so equal modules always list in the same order.
func buildRankings(names []string, modules map[string]*ModuleHealth, in Inputs) Rankings {
	var r Rankings

	for _, name := range names {
		r.ByHealth = append(r.ByHealth, RankEntry{Module: name, Value: modules[name].Score})

		var hours float64
		if in.Debt != nil {
			if m := in.Debt.Modules[name]; m != nil {
				hours = m.RemediationHours
			}
		}
		r.ByDebt = append(r.ByDebt, RankEntry{Module: name, Value: hours})

		var severity float64
		if in.Coupling != nil {
			if m := in.Coupling.Modules[name]; m != nil {
				severity = float64(m.Severity)
			}
		}
		r.ByCoupling = append(r.ByCoupling, RankEntry{Module: name, Value: severity})

		testScore := 100.0
		if in.Testability != nil {
			if m := in.Testability.Modules[name]; m != nil {
				testScore = m.Score
			}
		}
		r.ByTestability = append(r.ByTestability, RankEntry{Module: name, Value: testScore})
	}

	ascending := func(entries []RankEntry) {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Value != entries[j].Value {
				return entries[i].Value < entries[j].Value
			}
			return entries[i].Module < entries[j].Module
		})
	}
	descending := func(entries []RankEntry) {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Value != entries[j].Value {
				return entries[i].Value > entries[j].Value
			}
			return entries[i].Module < entries[j].Module
		})
	}

	ascending(r.ByHealth)       // lowest health first
	descending(r.ByDebt)        // most debt hours first
	descending(r.ByCoupling)    // highest severity first
	ascending(r.ByTestability)  // least testable first
	return r
}

// hasSizedCode reports whether the module contributed any source lines.
// Without a size analysis there is no basis to exclude anything.
func hasSizedCode(name string, s *size.Analysis) bool {
	if s == nil {
		return true
	}
	m := s.Modules[name]
	return m != nil && m.SLOC > 0
}

// moduleNames is the sorted union of module keys across all inputs.
func moduleNames(in Inputs) []string {
	seen := make(map[string]bool)
	if in.Complexity != nil {
		for name := range in.Complexity.Modules {
			seen[name] = true
		}
	}
	if in.Maintainability != nil {
		for name := range in.Maintainability.Modules {
			seen[name] = true
		}
	}
	if in.Smells != nil {
		for name := range in.Smells.Modules {
			seen[name] = true
		}
	}
	if in.Coupling != nil {
		for name := range in.Coupling.Modules {
			seen[name] = true
		}
	}
	if in.Testability != nil {
		for name := range in.Testability.Modules {
			seen[name] = true
		}
	}
	if in.Debt != nil {
		for name := range in.Debt.Modules {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
