package engine

import (
	"github.com/augur-analysis/augur/pkg/analyzer/cohesion"
	"github.com/augur-analysis/augur/pkg/analyzer/complexity"
	"github.com/augur-analysis/augur/pkg/analyzer/coupling"
	"github.com/augur-analysis/augur/pkg/analyzer/debt"
	"github.com/augur-analysis/augur/pkg/analyzer/duplicates"
	"github.com/augur-analysis/augur/pkg/analyzer/graph"
	"github.com/augur-analysis/augur/pkg/analyzer/health"
	"github.com/augur-analysis/augur/pkg/analyzer/maintainability"
	"github.com/augur-analysis/augur/pkg/analyzer/size"
	"github.com/augur-analysis/augur/pkg/analyzer/smells"
	"github.com/augur-analysis/augur/pkg/analyzer/testability"
	"github.com/augur-analysis/augur/pkg/facts"
)

// Result is the full report of one analysis run. It is plain data: it
// serializes to JSON or YAML and decodes back to an identical value, so
// reports can be archived and diffed.
type Result struct {
	Fingerprint string              `json:"fingerprint,omitempty"`
	Files       int                 `json:"files"`
	Modules     []string            `json:"modules,omitempty"`
	Skipped     []facts.SkippedFile `json:"skipped,omitempty"`

	Complexity      *complexity.Analysis      `json:"complexity,omitempty"`
	Maintainability *maintainability.Analysis `json:"maintainability,omitempty"`
	Size            *size.Analysis            `json:"size,omitempty"`
	Smells          *smells.Analysis          `json:"smells,omitempty"`
	Duplicates      *duplicates.Analysis      `json:"duplicates,omitempty"`
	Cohesion        *cohesion.Analysis        `json:"cohesion,omitempty"`
	Coupling        *coupling.Analysis        `json:"coupling,omitempty"`
	Graph           *graph.Analysis           `json:"graph,omitempty"`
	Testability     *testability.Analysis     `json:"testability,omitempty"`
	Debt            *debt.Analysis            `json:"debt,omitempty"`
	Health          *health.Analysis          `json:"health,omitempty"`
}
