// Package config loads and validates engine configuration: metric
// thresholds, the table-ownership map, the remediation cost table and
// runtime knobs. Configuration problems are fatal at startup; the engine
// never sees a partially valid config.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration for an analysis run.
type Config struct {
	// Ownership maps module name to the tables/collections it owns. The
	// distinguished key "shared" lists tables any module may touch.
	Ownership map[string][]string `koanf:"table_ownership" json:"table_ownership"`

	Thresholds Thresholds `koanf:"thresholds" json:"thresholds"`
	Costs      Costs      `koanf:"remediation_costs" json:"remediation_costs"`
	Coupling   Coupling   `koanf:"coupling" json:"coupling"`
	Duplicates Duplicates `koanf:"duplicates" json:"duplicates"`

	// HoursPerLine converts SLOC to development cost hours.
	HoursPerLine float64 `koanf:"hours_per_line" json:"hours_per_line"`

	// Workers bounds per-file fan-out. 0 means 2x NumCPU.
	Workers int `koanf:"workers" json:"workers"`
}

// Thresholds defines the numeric limits the analyzers flag against.
type Thresholds struct {
	Complexity      int     `koanf:"complexity" json:"complexity"`
	Maintainability float64 `koanf:"maintainability" json:"maintainability"`
	FileSize        int     `koanf:"file_size" json:"file_size"`
	FunctionSize    int     `koanf:"function_size" json:"function_size"`
	Parameters      int     `koanf:"parameters" json:"parameters"`
	Nesting         int     `koanf:"nesting" json:"nesting"`
	ClassMethods    int     `koanf:"class_methods" json:"class_methods"`
	ClassWMC        int     `koanf:"class_wmc" json:"class_wmc"`
	ClassLCOM       int     `koanf:"class_lcom" json:"class_lcom"`
	CommentRatio    float64 `koanf:"comment_ratio" json:"comment_ratio"`
	ModuleFanOut    int     `koanf:"module_fan_out" json:"module_fan_out"`
	ModuleFanIn     int     `koanf:"module_fan_in" json:"module_fan_in"`
}

// Costs maps each issue kind to its remediation cost in hours.
type Costs struct {
	VeryHighComplexity float64 `koanf:"very_high_complexity" json:"very_high_complexity"`
	HighComplexity     float64 `koanf:"high_complexity" json:"high_complexity"`
	LowMaintainability float64 `koanf:"low_maintainability" json:"low_maintainability"`
	GodClass           float64 `koanf:"god_class" json:"god_class"`
	GodMethod          float64 `koanf:"god_method" json:"god_method"`
	LongMethod         float64 `koanf:"long_method" json:"long_method"`
	LongParameterList  float64 `koanf:"long_parameter_list" json:"long_parameter_list"`
	DeepNesting        float64 `koanf:"deep_nesting" json:"deep_nesting"`
	DuplicateCode      float64 `koanf:"duplicate_code" json:"duplicate_code"`
	OtherTableWrite    float64 `koanf:"other_table_write" json:"other_table_write"`
	OtherTableRead     float64 `koanf:"other_table_read" json:"other_table_read"`
	LowCohesion        float64 `koanf:"low_cohesion" json:"low_cohesion"`
	HighFanOut         float64 `koanf:"high_fan_out" json:"high_fan_out"`
}

// Coupling configures data-access classification.
type Coupling struct {
	// ReadMethods and WriteMethods classify call-expression method tokens.
	// Writes additionally match by prefix (insert*, update*, delete*,
	// replace*) so driver-specific variants are caught.
	ReadMethods  []string `koanf:"read_methods" json:"read_methods"`
	WriteMethods []string `koanf:"write_methods" json:"write_methods"`

	// DataAccessModules mark imports that turn a test file into an
	// integration test (references to the database access layer).
	DataAccessModules []string `koanf:"data_access_modules" json:"data_access_modules"`
}

// Duplicates configures duplicate-block detection.
type Duplicates struct {
	MinLines       int     `koanf:"min_lines" json:"min_lines"`
	Similarity     float64 `koanf:"similarity" json:"similarity"`
	MaxComparisons int     `koanf:"max_comparisons" json:"max_comparisons"`
}

// Default returns the configuration used when a key is omitted.
func Default() *Config {
	return &Config{
		Ownership: map[string][]string{},
		Thresholds: Thresholds{
			Complexity:      10,
			Maintainability: 20,
			FileSize:        500,
			FunctionSize:    50,
			Parameters:      5,
			Nesting:         4,
			ClassMethods:    20,
			ClassWMC:        50,
			ClassLCOM:       2,
			CommentRatio:    5,
			ModuleFanOut:    10,
			ModuleFanIn:     20,
		},
		Costs: Costs{
			VeryHighComplexity: 1.0,
			HighComplexity:     0.5,
			LowMaintainability: 2.0,
			GodClass:           4.0,
			GodMethod:          2.0,
			LongMethod:         0.5,
			LongParameterList:  0.25,
			DeepNesting:        0.5,
			DuplicateCode:      1.0,
			OtherTableWrite:    2.0,
			OtherTableRead:     0.5,
			LowCohesion:        3.0,
			HighFanOut:         1.0,
		},
		Coupling: Coupling{
			ReadMethods: []string{
				"find", "find_one", "aggregate", "count", "count_documents",
				"distinct", "find_one_and_update", "find_one_and_replace",
				"find_one_and_delete", "select", "query", "get",
			},
			WriteMethods: []string{
				"insert", "insert_one", "insert_many", "update", "update_one",
				"update_many", "replace_one", "delete", "delete_one",
				"delete_many", "create_index", "drop", "drop_index", "save",
				"remove", "insert_update",
			},
			DataAccessModules: []string{"db"},
		},
		Duplicates: Duplicates{
			MinLines:       6,
			Similarity:     0.8,
			MaxComparisons: 250000,
		},
		HoursPerLine: 0.1,
	}
}

// Load reads a config file, layers it over the defaults and validates
// it. The parser is chosen by extension (.toml, .json, anything else =
// YAML).
func Load(path string) (*Config, error) {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = yaml.Parser()
	}

	// The raw file is schema-checked on its own, before defaults are
	// layered in, so a typo'd key fails instead of being silently
	// ignored.
	raw := koanf.New(".")
	if err := raw.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := validateSchema(raw.Raw()); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading default config: %w", err)
	}
	if err := k.Merge(raw); err != nil {
		return nil, fmt.Errorf("merging config %s: %w", path, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate rejects values the engine cannot run with.
func (c *Config) Validate() error {
	if c.HoursPerLine < 0 {
		return fmt.Errorf("hours_per_line must be non-negative, got %v", c.HoursPerLine)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	thresholds := map[string]float64{
		"thresholds.complexity":      float64(c.Thresholds.Complexity),
		"thresholds.maintainability": c.Thresholds.Maintainability,
		"thresholds.file_size":       float64(c.Thresholds.FileSize),
		"thresholds.function_size":   float64(c.Thresholds.FunctionSize),
		"thresholds.parameters":      float64(c.Thresholds.Parameters),
		"thresholds.nesting":         float64(c.Thresholds.Nesting),
		"thresholds.class_methods":   float64(c.Thresholds.ClassMethods),
		"thresholds.class_wmc":       float64(c.Thresholds.ClassWMC),
		"thresholds.class_lcom":      float64(c.Thresholds.ClassLCOM),
		"thresholds.comment_ratio":   c.Thresholds.CommentRatio,
		"thresholds.module_fan_out":  float64(c.Thresholds.ModuleFanOut),
		"thresholds.module_fan_in":   float64(c.Thresholds.ModuleFanIn),
	}
	for name, v := range thresholds {
		if v < 0 {
			return fmt.Errorf("%s must be non-negative, got %v", name, v)
		}
	}
	costs := map[string]float64{
		"very_high_complexity": c.Costs.VeryHighComplexity,
		"high_complexity":      c.Costs.HighComplexity,
		"low_maintainability":  c.Costs.LowMaintainability,
		"god_class":            c.Costs.GodClass,
		"god_method":           c.Costs.GodMethod,
		"long_method":          c.Costs.LongMethod,
		"long_parameter_list":  c.Costs.LongParameterList,
		"deep_nesting":         c.Costs.DeepNesting,
		"duplicate_code":       c.Costs.DuplicateCode,
		"other_table_write":    c.Costs.OtherTableWrite,
		"other_table_read":     c.Costs.OtherTableRead,
		"low_cohesion":         c.Costs.LowCohesion,
		"high_fan_out":         c.Costs.HighFanOut,
	}
	for name, v := range costs {
		if v < 0 {
			return fmt.Errorf("remediation_costs.%s must be non-negative, got %v", name, v)
		}
	}
	if c.Duplicates.Similarity < 0 || c.Duplicates.Similarity > 1 {
		return fmt.Errorf("duplicates.similarity must be in [0,1], got %v", c.Duplicates.Similarity)
	}
	if c.Duplicates.MinLines < 1 {
		return fmt.Errorf("duplicates.min_lines must be at least 1, got %d", c.Duplicates.MinLines)
	}
	for module, tables := range c.Ownership {
		if module == "" {
			return fmt.Errorf("table_ownership contains an empty module name")
		}
		for _, t := range tables {
			if t == "" {
				return fmt.Errorf("table_ownership[%q] contains an empty table name", module)
			}
		}
	}
	return nil
}
