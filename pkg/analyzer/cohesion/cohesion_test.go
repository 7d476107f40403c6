package cohesion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augur-analysis/augur/pkg/facts"
)

func class(name string, methods []facts.FunctionFact, attrs map[string][]string) facts.ClassFact {
	return facts.ClassFact{Name: name, Methods: methods, AttributeRefs: attrs}
}

func methods(names ...string) []facts.FunctionFact {
	out := make([]facts.FunctionFact, len(names))
	for i, n := range names {
		out[i] = facts.FunctionFact{Name: n}
	}
	return out
}

func TestLCOMSingleMethodIsOne(t *testing.T) {
	c := class("One", methods("only"), nil)
	assert.Equal(t, 1, lcom(&c))
}

func TestLCOMTwoDisjointPairs(t *testing.T) {
	// a-b share x, c-d share y: two components.
	c := class("Split", methods("a", "b", "c", "d"), map[string][]string{
		"a": {"x"},
		"b": {"x"},
		"c": {"y"},
		"d": {"y"},
	})
	assert.Equal(t, 2, lcom(&c))
}

func TestLCOMIsolatedMethodsAreSingletons(t *testing.T) {
	c := class("Loose", methods("a", "b", "c"), map[string][]string{
		"a": {"x"},
		"b": {"x"},
		// c touches nothing.
	})
	assert.Equal(t, 2, lcom(&c))
}

func TestLCOMNeverExceedsMethodCount(t *testing.T) {
	c := class("All", methods("a", "b", "c", "d", "e"), nil)
	got := lcom(&c)
	assert.Equal(t, 5, got)
	assert.LessOrEqual(t, got, len(c.Methods))
}

func TestGodClassByMethodCount(t *testing.T) {
	names := make([]string, 21)
	attrs := make(map[string][]string, 21)
	for i := range names {
		names[i] = string(rune('a' + i))
		attrs[names[i]] = []string{"shared"}
	}
	files := []facts.FileFact{{Path: "m/big.py", Module: "m", Classes: []facts.ClassFact{
		class("Big", methods(names...), attrs),
	}}}

	analysis, err := New().Analyze(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, analysis.Classes, 1)

	cr := analysis.Classes[0]
	assert.True(t, cr.GodClass)
	assert.Equal(t, []string{"methods 21 exceeds 20"}, cr.Reasons)
	assert.Equal(t, 1, cr.LCOM)
	assert.Empty(t, analysis.LowCohesion)
}

func TestGodClassByWMC(t *testing.T) {
	ms := []facts.FunctionFact{
		{Name: "a", DecisionPoints: 30}, // cc 31
		{Name: "b", DecisionPoints: 21}, // cc 22
	}
	files := []facts.FileFact{{Path: "m/branchy.py", Module: "m", Classes: []facts.ClassFact{
		class("Branchy", ms, map[string][]string{"a": {"x"}, "b": {"x"}}),
	}}}

	analysis, err := New().Analyze(context.Background(), files)
	require.NoError(t, err)

	cr := analysis.Classes[0]
	assert.Equal(t, 53, cr.WMC)
	assert.True(t, cr.GodClass)
	assert.Equal(t, []string{"wmc 53 exceeds 50"}, cr.Reasons)
}

func TestLowCohesionWithoutGodSizeStillFlagged(t *testing.T) {
	// Four methods in two disjoint pairs plus a loner: LCOM 3 > 2.
	c := class("Scattered", methods("a", "b", "c", "d", "e"), map[string][]string{
		"a": {"x"}, "b": {"x"},
		"c": {"y"}, "d": {"y"},
	})
	files := []facts.FileFact{{Path: "m/s.py", Module: "m", Classes: []facts.ClassFact{c}}}

	analysis, err := New().Analyze(context.Background(), files)
	require.NoError(t, err)

	cr := analysis.Classes[0]
	assert.Equal(t, 3, cr.LCOM)
	assert.True(t, cr.GodClass) // lcom reason counts toward god classification
	require.Len(t, analysis.LowCohesion, 1)
	assert.Equal(t, "Scattered", analysis.LowCohesion[0].Name)
}

func TestModuleAggregation(t *testing.T) {
	files := []facts.FileFact{
		{Path: "m/a.py", Module: "m", Classes: []facts.ClassFact{
			class("A", methods("f"), nil),                  // LCOM 1
			class("B", methods("f", "g", "h"), nil),        // LCOM 3
		}},
	}

	analysis, err := New().Analyze(context.Background(), files)
	require.NoError(t, err)

	mod := analysis.Modules["m"]
	require.NotNil(t, mod)
	assert.Equal(t, 2, mod.Classes)
	assert.Equal(t, 2.0, mod.AvgLCOM)
	assert.Equal(t, 2, analysis.Summary.TotalClasses)
}
