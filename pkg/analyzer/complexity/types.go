package complexity

// Bucket labels for cyclomatic complexity ranges.
const (
	BucketSimple      = "simple"       // 1-5
	BucketModerate    = "moderate"     // 6-10
	BucketComplex     = "complex"      // 11-20
	BucketVeryComplex = "very_complex" // 21+
)

// BucketFor returns the distribution bucket for a cyclomatic value.
func BucketFor(cyclomatic int) string {
	switch {
	case cyclomatic <= 5:
		return BucketSimple
	case cyclomatic <= 10:
		return BucketModerate
	case cyclomatic <= 20:
		return BucketComplex
	default:
		return BucketVeryComplex
	}
}

// Distribution counts functions per complexity bucket.
type Distribution struct {
	Simple      int `json:"simple"`
	Moderate    int `json:"moderate"`
	Complex     int `json:"complex"`
	VeryComplex int `json:"very_complex"`
}

// Add places one cyclomatic value into its bucket.
func (d *Distribution) Add(cyclomatic int) {
	switch BucketFor(cyclomatic) {
	case BucketSimple:
		d.Simple++
	case BucketModerate:
		d.Moderate++
	case BucketComplex:
		d.Complex++
	default:
		d.VeryComplex++
	}
}

// FunctionResult is one function's complexity.
type FunctionResult struct {
	Name       string `json:"name"`
	File       string `json:"file"`
	StartLine  uint32 `json:"start_line"`
	Cyclomatic int    `json:"cyclomatic"`
	Bucket     string `json:"bucket"`
}

// FileResult aggregates complexity for a file.
type FileResult struct {
	Path            string           `json:"path"`
	Module          string           `json:"module"`
	Functions       []FunctionResult `json:"functions,omitempty"`
	TotalCyclomatic int              `json:"total_cyclomatic"`
	AvgCyclomatic   float64          `json:"avg_cyclomatic"`
	MaxCyclomatic   int              `json:"max_cyclomatic"`
}

// ModuleResult aggregates complexity for a module.
type ModuleResult struct {
	Module        string       `json:"module"`
	Functions     int          `json:"functions"`
	AvgCyclomatic float64      `json:"avg_cyclomatic"`
	MaxCyclomatic int          `json:"max_cyclomatic"`
	Distribution  Distribution `json:"distribution"`
}

// Summary holds project-wide complexity statistics.
type Summary struct {
	TotalFiles     int          `json:"total_files"`
	TotalFunctions int          `json:"total_functions"`
	AvgCyclomatic  float64      `json:"avg_cyclomatic"`
	MaxCyclomatic  int          `json:"max_cyclomatic"`
	Distribution   Distribution `json:"distribution"`
}

// Analysis is the complexity analyzer's result.
type Analysis struct {
	Files   []FileResult             `json:"files"`
	Modules map[string]*ModuleResult `json:"modules"`
	Summary Summary                  `json:"summary"`
}
