package coupling

// Access categories for a data call.
const (
	CategoryOwn        = "own"
	CategoryShared     = "shared"
	CategoryOtherRead  = "other_read"
	CategoryOtherWrite = "other_write"
	CategoryUnknown    = "unknown"
)

// Violation kinds.
const (
	KindOtherTableRead  = "other_table_read"
	KindOtherTableWrite = "other_table_write"
	KindMixedLogic      = "mixed_logic"
)

// Severity weights. Writes into another module's tables cost five times a
// read; a function mixing data access with branching sits between.
const (
	weightRead  = 1
	weightWrite = 5
	weightMixed = 3
)

// Violation is one individually addressable coupling problem.
type Violation struct {
	Kind     string `json:"kind"`
	File     string `json:"file"`
	Module   string `json:"module"`
	Line     uint32 `json:"line"`
	Table    string `json:"table,omitempty"`
	Method   string `json:"method,omitempty"`
	Owner    string `json:"owner,omitempty"`
	Function string `json:"function,omitempty"`
}

// ModuleResult aggregates data-access behavior for a module.
type ModuleResult struct {
	Module         string `json:"module"`
	OwnCalls       int    `json:"own_calls"`
	SharedCalls    int    `json:"shared_calls"`
	OtherReads     int    `json:"other_reads"`
	OtherWrites    int    `json:"other_writes"`
	UnknownCalls   int    `json:"unknown_calls"`
	MixedFunctions int    `json:"mixed_functions"`
	Severity       int    `json:"severity"`
}

// Summary holds project-wide coupling statistics.
type Summary struct {
	TotalCalls     int `json:"total_calls"`
	OtherReads     int `json:"other_reads"`
	OtherWrites    int `json:"other_writes"`
	MixedFunctions int `json:"mixed_functions"`
	Severity       int `json:"severity"`
}

// Analysis is the coupling analyzer's result. UnknownTables lists tables
// no ownership entry matched; they are counted but never add severity.
type Analysis struct {
	Modules       map[string]*ModuleResult `json:"modules"`
	Violations    []Violation              `json:"violations,omitempty"`
	UnknownTables []string                 `json:"unknown_tables,omitempty"`
	Summary       Summary                  `json:"summary"`
}
