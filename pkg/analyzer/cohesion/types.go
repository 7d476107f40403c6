package cohesion

// ClassResult holds one class's cohesion metrics.
type ClassResult struct {
	Name     string   `json:"name"`
	File     string   `json:"file"`
	Module   string   `json:"module"`
	Line     uint32   `json:"line"`
	Methods  int      `json:"methods"`
	WMC      int      `json:"wmc"`
	LCOM     int      `json:"lcom"`
	GodClass bool     `json:"god_class"`
	Reasons  []string `json:"reasons,omitempty"`
}

// ModuleResult aggregates cohesion for a module.
type ModuleResult struct {
	Module     string  `json:"module"`
	Classes    int     `json:"classes"`
	GodClasses int     `json:"god_classes"`
	AvgLCOM    float64 `json:"avg_lcom"`
}

// Summary holds project-wide cohesion statistics.
type Summary struct {
	TotalClasses int     `json:"total_classes"`
	GodClasses   int     `json:"god_classes"`
	LowCohesion  int     `json:"low_cohesion"`
	AvgLCOM      float64 `json:"avg_lcom"`
}

// Analysis is the cohesion analyzer's result. LowCohesion lists classes
// over the LCOM threshold whether or not they are god classes.
type Analysis struct {
	Classes     []ClassResult            `json:"classes,omitempty"`
	LowCohesion []ClassResult            `json:"low_cohesion,omitempty"`
	Modules     map[string]*ModuleResult `json:"modules"`
	Summary     Summary                  `json:"summary"`
}
