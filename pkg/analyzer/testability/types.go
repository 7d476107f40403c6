package testability

// Test kinds.
const (
	KindUnit        = "unit"
	KindIntegration = "integration"
)

// TestFile is one classified test file.
type TestFile struct {
	Path      string `json:"path"`
	Module    string `json:"module"`
	Kind      string `json:"kind"`
	Functions int    `json:"functions"`
}

// ModuleResult aggregates test coverage shape and testability for a module.
type ModuleResult struct {
	Module               string  `json:"module"`
	UnitTests            int     `json:"unit_tests"`
	IntegrationTests     int     `json:"integration_tests"`
	UnitFunctions        int     `json:"unit_functions"`
	IntegrationFunctions int     `json:"integration_functions"`
	BranchingFunctions   int     `json:"branching_functions"`
	MixedFunctions       int     `json:"mixed_functions"`
	Score                float64 `json:"score"`
}

// Summary holds project-wide testability statistics.
type Summary struct {
	TestFiles          int     `json:"test_files"`
	UnitTests          int     `json:"unit_tests"`
	IntegrationTests   int     `json:"integration_tests"`
	UnitPercent        float64 `json:"unit_percent"`
	IntegrationPercent float64 `json:"integration_percent"`
	Score              float64 `json:"score"`
}

// Analysis is the testability analyzer's result.
type Analysis struct {
	TestFiles []TestFile               `json:"test_files,omitempty"`
	Modules   map[string]*ModuleResult `json:"modules"`
	Summary   Summary                  `json:"summary"`
}
