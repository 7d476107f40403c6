package graph

// Stability categories derived from the instability metric.
const (
	CategoryStable   = "stable"   // I < 0.3
	CategoryModerate = "moderate" // 0.3 <= I <= 0.7
	CategoryUnstable = "unstable" // I > 0.7
)

// Warning kinds.
const (
	KindHighFanOut = "high_fan_out"
	KindHighFanIn  = "high_fan_in"
	KindCycle      = "cycle"
)

// Edge is one module depending on another.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ModuleResult holds one module's position in the dependency graph.
type ModuleResult struct {
	Module      string   `json:"module"`
	FanIn       int      `json:"fan_in"`
	FanOut      int      `json:"fan_out"`
	Instability float64  `json:"instability"`
	Category    string   `json:"category"`
	Imports     []string `json:"imports,omitempty"`
	ImportedBy  []string `json:"imported_by,omitempty"`
}

// Warning flags a structural problem in the graph.
type Warning struct {
	Kind      string   `json:"kind"`
	Module    string   `json:"module,omitempty"`
	Value     int      `json:"value,omitempty"`
	Threshold int      `json:"threshold,omitempty"`
	Cycle     []string `json:"cycle,omitempty"`
}

// Summary holds project-wide graph statistics.
type Summary struct {
	Modules int `json:"modules"`
	Edges   int `json:"edges"`
	Cycles  int `json:"cycles"`
}

// Analysis is the graph analyzer's result. Cycles lists strongly
// connected components with more than one module, each sorted by name.
type Analysis struct {
	Modules  map[string]*ModuleResult `json:"modules"`
	Edges    []Edge                   `json:"edges,omitempty"`
	Cycles   [][]string               `json:"cycles,omitempty"`
	Warnings []Warning                `json:"warnings,omitempty"`
	Summary  Summary                  `json:"summary"`
}
