// Package facts defines the normalized structural representation of source
// files that every analyzer consumes. Facts are produced once per run by an
// external extraction collaborator and are never mutated afterwards.
package facts

import "sort"

// RootModule is the bucket for files that no module mapping matched.
const RootModule = "root"

// FileFact is the per-file unit of analysis.
type FileFact struct {
	Path         string               `json:"path"`
	Module       string               `json:"module"`
	SLOC         int                  `json:"sloc"`
	CommentLines int                  `json:"comment_lines"`
	BlankLines   int                  `json:"blank_lines"`
	Functions    []FunctionFact       `json:"functions,omitempty"`
	Classes      []ClassFact          `json:"classes,omitempty"`
	Imports      []ImportFact         `json:"imports,omitempty"`
	Calls        []CallExpressionFact `json:"calls,omitempty"`
}

// FunctionFact describes a single function or method.
type FunctionFact struct {
	Name           string               `json:"name"`
	StartLine      uint32               `json:"start_line"`
	EndLine        uint32               `json:"end_line"`
	ParamCount     int                  `json:"param_count"`
	DecisionPoints int                  `json:"decision_points"`
	NestingDepth   int                  `json:"nesting_depth"`
	Operators      map[string]int       `json:"operators,omitempty"`
	Operands       map[string]int       `json:"operands,omitempty"`
	Calls          []CallExpressionFact `json:"calls,omitempty"`
	Class          string               `json:"class,omitempty"`
}

// Cyclomatic returns 1 + decision points. Never below 1.
func (f *FunctionFact) Cyclomatic() int {
	if f.DecisionPoints < 0 {
		return 1
	}
	return 1 + f.DecisionPoints
}

// Lines returns the function's source-line span.
func (f *FunctionFact) Lines() int {
	if f.EndLine < f.StartLine {
		return 0
	}
	return int(f.EndLine - f.StartLine + 1)
}

// ClassFact describes a class and the attributes each method touches.
type ClassFact struct {
	Name      string         `json:"name"`
	StartLine uint32         `json:"start_line"`
	Methods   []FunctionFact `json:"methods,omitempty"`
	// AttributeRefs maps method name to the instance attributes it references.
	AttributeRefs map[string][]string `json:"attribute_refs,omitempty"`
}

// CallExpressionFact is a single data-access call site.
type CallExpressionFact struct {
	Receiver   string `json:"receiver"`
	Collection string `json:"collection"`
	Method     string `json:"method"`
	Line       uint32 `json:"line"`
	Function   string `json:"function,omitempty"`
}

// ImportFact records one import in a file. Module is the resolved module
// the import lands in (empty when unresolvable), Imported the raw import
// path as written.
type ImportFact struct {
	Module   string   `json:"module,omitempty"`
	Imported string   `json:"imported"`
	Symbols  []string `json:"symbols,omitempty"`
}

// SkippedFile records a file the extraction collaborator could not process.
// Skips are carried through to the final report, never raised as errors.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Extraction is the engine's input: the fact set plus extraction casualties.
type Extraction struct {
	Files   []FileFact    `json:"files"`
	Skipped []SkippedFile `json:"skipped,omitempty"`
}

// SortFiles orders files by path so every reduction is independent of the
// order the extractor emitted them in.
func SortFiles(files []FileFact) {
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
}

// SortedIndex returns file indices ordered by path without touching the
// input slice, so analyzers running concurrently over the same facts can
// each reduce in a stable order.
func SortedIndex(files []FileFact) []int {
	idx := make([]int, len(files))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return files[idx[i]].Path < files[idx[j]].Path })
	return idx
}

// Modules returns the sorted set of module names present in the fact set.
func Modules(files []FileFact) []string {
	seen := make(map[string]bool)
	for i := range files {
		seen[files[i].Module] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
