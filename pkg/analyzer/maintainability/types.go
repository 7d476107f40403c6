package maintainability

// Bucket labels for the maintainability index.
const (
	BucketHigh     = "high"     // 65-100
	BucketModerate = "moderate" // 20-64
	BucketLow      = "low"      // 0-19
)

// BucketFor returns the bucket for a maintainability index value.
func BucketFor(mi float64) string {
	switch {
	case mi >= 65:
		return BucketHigh
	case mi >= 20:
		return BucketModerate
	default:
		return BucketLow
	}
}

// FileResult holds one file's maintainability index and its inputs.
type FileResult struct {
	Path           string  `json:"path"`
	Module         string  `json:"module"`
	Index          float64 `json:"index"`
	HalsteadVolume float64 `json:"halstead_volume"`
	AvgComplexity  float64 `json:"avg_complexity"`
	SLOC           int     `json:"sloc"`
	Bucket         string  `json:"bucket"`
}

// ModuleResult aggregates maintainability for a module.
type ModuleResult struct {
	Module   string  `json:"module"`
	Files    int     `json:"files"`
	AvgIndex float64 `json:"avg_index"`
	LowFiles int     `json:"low_files"`
}

// Summary holds project-wide maintainability statistics.
type Summary struct {
	TotalFiles int     `json:"total_files"`
	AvgIndex   float64 `json:"avg_index"`
	High       int     `json:"high"`
	Moderate   int     `json:"moderate"`
	Low        int     `json:"low"`
}

// Analysis is the maintainability analyzer's result.
type Analysis struct {
	Files   []FileResult             `json:"files"`
	Modules map[string]*ModuleResult `json:"modules"`
	Summary Summary                  `json:"summary"`
}
