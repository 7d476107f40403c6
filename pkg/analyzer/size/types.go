package size

// Bucket labels for file size.
const (
	BucketSmall  = "small"  // < 100 SLOC
	BucketMedium = "medium" // 100-500
	BucketLarge  = "large"  // > 500
)

// FileResult holds one file's size metrics.
type FileResult struct {
	Path         string  `json:"path"`
	Module       string  `json:"module"`
	SLOC         int     `json:"sloc"`
	CommentLines int     `json:"comment_lines"`
	BlankLines   int     `json:"blank_lines"`
	CommentRatio float64 `json:"comment_ratio"`
	Bucket       string  `json:"bucket"`
}

// ModuleResult aggregates size for a module.
type ModuleResult struct {
	Module       string  `json:"module"`
	Files        int     `json:"files"`
	SLOC         int     `json:"sloc"`
	CommentLines int     `json:"comment_lines"`
	CommentRatio float64 `json:"comment_ratio"`
}

// Summary holds project-wide size statistics.
type Summary struct {
	TotalFiles   int     `json:"total_files"`
	TotalSLOC    int     `json:"total_sloc"`
	CommentRatio float64 `json:"comment_ratio"`
	Small        int     `json:"small"`
	Medium       int     `json:"medium"`
	Large        int     `json:"large"`
}

// Analysis is the size analyzer's result. LowDocumentation lists files
// whose comment ratio falls below the configured floor despite being big
// enough to need comments.
type Analysis struct {
	Files            []FileResult             `json:"files"`
	Modules          map[string]*ModuleResult `json:"modules"`
	LowDocumentation []string                 `json:"low_documentation,omitempty"`
	Summary          Summary                  `json:"summary"`
}
