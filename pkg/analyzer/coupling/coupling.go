// Package coupling classifies every data-access call against the
// table-ownership map and scores cross-module access. Reads of another
// module's tables are cheap, writes are expensive, and functions that mix
// data access with branching logic are flagged so persistence can be
// untangled from decisions.
package coupling

import (
	"context"
	"sort"
	"strings"

	"github.com/augur-analysis/augur/pkg/analyzer"
	"github.com/augur-analysis/augur/pkg/config"
	"github.com/augur-analysis/augur/pkg/facts"
)

// Ensure Analyzer implements analyzer.FactAnalyzer.
var _ analyzer.FactAnalyzer[*Analysis] = (*Analyzer)(nil)

// SharedOwner is the ownership key whose tables any module may touch.
const SharedOwner = "shared"

// writePrefixes catch driver-specific write variants not in the
// configured list.
var writePrefixes = []string{"insert", "update", "delete", "replace"}

// Analyzer classifies data-access calls.
type Analyzer struct {
	owners       map[string]string
	readMethods  map[string]bool
	writeMethods map[string]bool
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithConfig applies the ownership map and method classification lists.
func WithConfig(cfg *config.Config) Option {
	return func(a *Analyzer) {
		a.owners = ownerIndex(cfg.Ownership)
		a.readMethods = toSet(cfg.Coupling.ReadMethods)
		a.writeMethods = toSet(cfg.Coupling.WriteMethods)
	}
}

// New creates a new coupling analyzer.
func New(opts ...Option) *Analyzer {
	def := config.Default()
	a := &Analyzer{
		owners:       map[string]string{},
		readMethods:  toSet(def.Coupling.ReadMethods),
		writeMethods: toSet(def.Coupling.WriteMethods),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze classifies every call in the fact set and scores each module.
func (a *Analyzer) Analyze(ctx context.Context, files []facts.FileFact) (*Analysis, error) {
	analysis := &Analysis{Modules: make(map[string]*ModuleResult)}
	unknown := make(map[string]bool)

	for _, i := range facts.SortedIndex(files) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		f := &files[i]
		mod := analysis.Modules[f.Module]
		if mod == nil {
			mod = &ModuleResult{Module: f.Module}
			analysis.Modules[f.Module] = mod
		}

		for _, call := range f.Calls {
			a.classifyCall(analysis, mod, f, call, unknown)
		}
		for k := range f.Functions {
			fn := &f.Functions[k]
			if hasDataCall(fn) && fn.DecisionPoints > 0 {
				mod.MixedFunctions++
				analysis.Summary.MixedFunctions++
				analysis.Violations = append(analysis.Violations, Violation{
					Kind:     KindMixedLogic,
					File:     f.Path,
					Module:   f.Module,
					Line:     fn.StartLine,
					Function: fn.Name,
				})
			}
		}
	}

	// Unknown tables never score; they only show up in counts and the
	// unknown-table list.
	for _, mod := range analysis.Modules {
		mod.Severity = mod.OtherReads*weightRead + mod.OtherWrites*weightWrite + mod.MixedFunctions*weightMixed
		analysis.Summary.Severity += mod.Severity
	}

	if len(unknown) > 0 {
		analysis.UnknownTables = make([]string, 0, len(unknown))
		for table := range unknown {
			analysis.UnknownTables = append(analysis.UnknownTables, table)
		}
		sort.Strings(analysis.UnknownTables)
	}

	return analysis, nil
}

// classifyCall buckets one call site and records a violation when it
// crosses an ownership boundary.
func (a *Analyzer) classifyCall(analysis *Analysis, mod *ModuleResult, f *facts.FileFact, call facts.CallExpressionFact, unknown map[string]bool) {
	if call.Collection == "" {
		return
	}
	analysis.Summary.TotalCalls++

	owner, found := a.owners[call.Collection]
	switch {
	case !found:
		mod.UnknownCalls++
		unknown[call.Collection] = true
	case owner == f.Module:
		mod.OwnCalls++
	case owner == SharedOwner:
		mod.SharedCalls++
	case a.isWrite(call.Method):
		mod.OtherWrites++
		analysis.Summary.OtherWrites++
		analysis.Violations = append(analysis.Violations, Violation{
			Kind:     KindOtherTableWrite,
			File:     f.Path,
			Module:   f.Module,
			Line:     call.Line,
			Table:    call.Collection,
			Method:   call.Method,
			Owner:    owner,
			Function: call.Function,
		})
	default:
		mod.OtherReads++
		analysis.Summary.OtherReads++
		analysis.Violations = append(analysis.Violations, Violation{
			Kind:     KindOtherTableRead,
			File:     f.Path,
			Module:   f.Module,
			Line:     call.Line,
			Table:    call.Collection,
			Method:   call.Method,
			Owner:    owner,
			Function: call.Function,
		})
	}
}

// isWrite reports whether a method mutates data: exact match on the
// configured write list, or one of the write prefixes. Anything else is
// treated as a read, so unrecognized methods get the cheaper weight.
func (a *Analyzer) isWrite(method string) bool {
	m := strings.ToLower(method)
	if a.writeMethods[m] {
		return true
	}
	if a.readMethods[m] {
		return false
	}
	for _, prefix := range writePrefixes {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}

// hasDataCall ignores call facts without a collection, the same ones the
// classifier skips.
func hasDataCall(fn *facts.FunctionFact) bool {
	for _, call := range fn.Calls {
		if call.Collection != "" {
			return true
		}
	}
	return false
}

func ownerIndex(ownership map[string][]string) map[string]string {
	owners := make(map[string]string)
	for module, tables := range ownership {
		for _, table := range tables {
			owners[table] = module
		}
	}
	return owners
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
