package duplicates

// BlockRef points at one side of a duplicate pair.
type BlockRef struct {
	File      string `json:"file"`
	Module    string `json:"module"`
	Function  string `json:"function"`
	StartLine uint32 `json:"start_line"`
	EndLine   uint32 `json:"end_line"`
}

// Pair is two blocks whose token similarity crossed the threshold.
type Pair struct {
	A          BlockRef `json:"a"`
	B          BlockRef `json:"b"`
	Similarity float64  `json:"similarity"`
}

// FileResult reports how much of a file is covered by duplicate blocks.
type FileResult struct {
	Path             string  `json:"path"`
	Module           string  `json:"module"`
	DuplicatedLines  int     `json:"duplicated_lines"`
	DuplicationRatio float64 `json:"duplication_ratio"`
}

// ModuleResult aggregates duplication for a module.
type ModuleResult struct {
	Module           string  `json:"module"`
	Pairs            int     `json:"pairs"`
	DuplicatedLines  int     `json:"duplicated_lines"`
	DuplicationRatio float64 `json:"duplication_ratio"`
}

// Summary holds project-wide duplication statistics. Capped is set when
// the comparison cap was hit before all candidate pairs were checked.
type Summary struct {
	Blocks           int     `json:"blocks"`
	Comparisons      int     `json:"comparisons"`
	Capped           bool    `json:"capped"`
	Pairs            int     `json:"pairs"`
	DuplicationRatio float64 `json:"duplication_ratio"`
}

// Analysis is the duplicates analyzer's result.
type Analysis struct {
	Pairs   []Pair                   `json:"pairs,omitempty"`
	Files   []FileResult             `json:"files,omitempty"`
	Modules map[string]*ModuleResult `json:"modules"`
	Summary Summary                  `json:"summary"`
}
