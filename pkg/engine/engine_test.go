package engine

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augur-analysis/augur/pkg/analyzer/coupling"
	"github.com/augur-analysis/augur/pkg/config"
	"github.com/augur-analysis/augur/pkg/facts"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Ownership = map[string][]string{
		"billing":    {"invoices"},
		"promotions": {"promos"},
		"shared":     {"settings"},
	}
	return cfg
}

// Pure decision logic: complexity counts it, coupling and testability
// have nothing to complain about.
func TestPureBranchingModule(t *testing.T) {
	extraction := facts.Extraction{Files: []facts.FileFact{
		{Path: "logic/rules.py", Module: "logic", SLOC: 30, Functions: []facts.FunctionFact{
			{Name: "decide", StartLine: 1, EndLine: 20, DecisionPoints: 3},
		}},
	}}

	result, err := New(testConfig()).Run(context.Background(), extraction)
	require.NoError(t, err)

	require.Len(t, result.Complexity.Files, 1)
	assert.Equal(t, 4, result.Complexity.Files[0].Functions[0].Cyclomatic)
	assert.Equal(t, 0, result.Coupling.Modules["logic"].Severity)
	assert.Equal(t, 100.0, result.Testability.Modules["logic"].Score)
}

// A promotions function writing into billing's table: severity 5, and the
// violation carries the exact line.
func TestCrossModuleWriteIsAddressable(t *testing.T) {
	extraction := facts.Extraction{Files: []facts.FileFact{
		{Path: "promotions/grant.py", Module: "promotions", SLOC: 40, Calls: []facts.CallExpressionFact{
			{Collection: "invoices", Method: "insert_one", Line: 17, Function: "apply_promo"},
		}},
	}}

	result, err := New(testConfig()).Run(context.Background(), extraction)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Coupling.Modules["promotions"].Severity)
	require.Len(t, result.Coupling.Violations, 1)
	v := result.Coupling.Violations[0]
	assert.Equal(t, coupling.KindOtherTableWrite, v.Kind)
	assert.Equal(t, uint32(17), v.Line)
	assert.Equal(t, "billing", v.Owner)

	// The write also shows up priced in the debt report.
	assert.Equal(t, 2.0, result.Debt.Modules["promotions"].HoursByKind["other_table_write"])
}

func TestMutualImportsReportOneCycle(t *testing.T) {
	extraction := facts.Extraction{Files: []facts.FileFact{
		{Path: "a/x.py", Module: "a", Imports: []facts.ImportFact{{Module: "b", Imported: "b"}}},
		{Path: "b/y.py", Module: "b", Imports: []facts.ImportFact{{Module: "a", Imported: "a"}}},
	}}

	result, err := New(testConfig()).Run(context.Background(), extraction)
	require.NoError(t, err)
	require.Len(t, result.Graph.Cycles, 1)
	assert.Equal(t, []string{"a", "b"}, result.Graph.Cycles[0])
}

func TestFourMethodClassWithTwoAttributeClusters(t *testing.T) {
	extraction := facts.Extraction{Files: []facts.FileFact{
		{Path: "m/cls.py", Module: "m", Classes: []facts.ClassFact{{
			Name: "Split",
			Methods: []facts.FunctionFact{
				{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"},
			},
			AttributeRefs: map[string][]string{
				"a": {"x"}, "b": {"x"},
				"c": {"y"}, "d": {"y"},
			},
		}}},
	}}

	result, err := New(testConfig()).Run(context.Background(), extraction)
	require.NoError(t, err)
	require.Len(t, result.Cohesion.Classes, 1)
	assert.Equal(t, 2, result.Cohesion.Classes[0].LCOM)
}

func TestFingerprintIsStableUnderPermutation(t *testing.T) {
	f1 := facts.FileFact{Path: "a/x.py", Module: "a", SLOC: 50, Functions: []facts.FunctionFact{{Name: "f", DecisionPoints: 2, StartLine: 1, EndLine: 10}}}
	f2 := facts.FileFact{Path: "b/y.py", Module: "b", SLOC: 70, Calls: []facts.CallExpressionFact{{Collection: "invoices", Method: "find", Line: 3}}}
	f3 := facts.FileFact{Path: "c/z.py", Module: "c", SLOC: 20, Imports: []facts.ImportFact{{Module: "a", Imported: "a"}}}

	e := New(testConfig())
	first, err := e.Run(context.Background(), facts.Extraction{Files: []facts.FileFact{f1, f2, f3}})
	require.NoError(t, err)
	second, err := e.Run(context.Background(), facts.Extraction{Files: []facts.FileFact{f3, f1, f2}})
	require.NoError(t, err)

	assert.NotEmpty(t, first.Fingerprint)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, first, second)
}

func TestFingerprintChangesWithFacts(t *testing.T) {
	base := facts.Extraction{Files: []facts.FileFact{
		{Path: "a/x.py", Module: "a", SLOC: 50},
	}}
	changed := facts.Extraction{Files: []facts.FileFact{
		{Path: "a/x.py", Module: "a", SLOC: 51},
	}}

	e := New(testConfig())
	first, err := e.Run(context.Background(), base)
	require.NoError(t, err)
	second, err := e.Run(context.Background(), changed)
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint, second.Fingerprint)
}

func TestResultRoundTripsThroughJSON(t *testing.T) {
	extraction := facts.Extraction{
		Files: []facts.FileFact{
			{Path: "billing/svc.py", Module: "billing", SLOC: 120, CommentLines: 10,
				Functions: []facts.FunctionFact{{Name: "f", StartLine: 1, EndLine: 60, DecisionPoints: 12, ParamCount: 7}},
				Calls:     []facts.CallExpressionFact{{Collection: "promos", Method: "update_one", Line: 30}},
			},
		},
		Skipped: []facts.SkippedFile{{Path: "billing/broken.py", Reason: "parse error"}},
	}

	result, err := New(testConfig()).Run(context.Background(), extraction)
	require.NoError(t, err)
	require.Len(t, result.Skipped, 1)

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *result, decoded)
}

func TestSkippedFilesCarriedNotRaised(t *testing.T) {
	extraction := facts.Extraction{
		Skipped: []facts.SkippedFile{{Path: "x.py", Reason: "unreadable"}},
	}

	result, err := New(testConfig()).Run(context.Background(), extraction)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Files)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "unreadable", result.Skipped[0].Reason)
}

func TestProgressCallbackCoversAllStages(t *testing.T) {
	var stages []string
	e := New(testConfig(), WithProgress(func(stage string, completed, total int) {
		stages = append(stages, stage)
		assert.Equal(t, len(Stages), total)
	}))

	_, err := e.Run(context.Background(), facts.Extraction{Files: []facts.FileFact{
		{Path: "a/x.py", Module: "a", SLOC: 5},
	}})
	require.NoError(t, err)
	assert.Len(t, stages, len(Stages))
	assert.ElementsMatch(t, Stages, stages)
}
