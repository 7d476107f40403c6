package smells

// Smell kinds.
const (
	KindLongMethod        = "long_method"
	KindLongParameterList = "long_parameter_list"
	KindDeepNesting       = "deep_nesting"
	KindGodMethod         = "god_method"
)

// Smell is one detected smell, individually addressable.
type Smell struct {
	Kind      string `json:"kind"`
	File      string `json:"file"`
	Module    string `json:"module"`
	Function  string `json:"function"`
	Line      uint32 `json:"line"`
	Value     int    `json:"value"`
	Threshold int    `json:"threshold"`
}

// ModuleResult aggregates smells for a module.
type ModuleResult struct {
	Module        string         `json:"module"`
	Count         int            `json:"count"`
	ByKind        map[string]int `json:"by_kind,omitempty"`
	SmellsPerKLOC float64        `json:"smells_per_kloc"`
}

// Summary holds project-wide smell statistics.
type Summary struct {
	Total         int            `json:"total"`
	ByKind        map[string]int `json:"by_kind,omitempty"`
	SmellsPerKLOC float64        `json:"smells_per_kloc"`
}

// Analysis is the smells analyzer's result.
type Analysis struct {
	Smells  []Smell                  `json:"smells,omitempty"`
	Modules map[string]*ModuleResult `json:"modules"`
	Summary Summary                  `json:"summary"`
}
