package health

// Health categories by composite score.
const (
	CategoryExcellent = "excellent" // >= 80
	CategoryGood      = "good"      // >= 60
	CategoryWarning   = "warning"   // >= 40
	CategoryCritical  = "critical"  // >= 20
	CategoryEmergency = "emergency" // < 20
)

// CategoryFor maps a health score onto its category.
func CategoryFor(score float64) string {
	switch {
	case score >= 80:
		return CategoryExcellent
	case score >= 60:
		return CategoryGood
	case score >= 40:
		return CategoryWarning
	case score >= 20:
		return CategoryCritical
	default:
		return CategoryEmergency
	}
}

// Components are the normalized sub-scores feeding the composite.
type Components struct {
	Coupling        float64 `json:"coupling"`
	Complexity      float64 `json:"complexity"`
	Maintainability float64 `json:"maintainability"`
	Testability     float64 `json:"testability"`
	Smells          float64 `json:"smells"`
	Debt            float64 `json:"debt"`
}

// ModuleHealth is one module's composite health.
type ModuleHealth struct {
	Module     string     `json:"module"`
	Score      float64    `json:"score"`
	Category   string     `json:"category"`
	Components Components `json:"components"`
}

// RankEntry is one row in a ranking.
type RankEntry struct {
	Module string  `json:"module"`
	Value  float64 `json:"value"`
}

// Rankings orders modules worst-first along independent axes.
type Rankings struct {
	ByHealth      []RankEntry `json:"by_health,omitempty"`
	ByDebt        []RankEntry `json:"by_debt,omitempty"`
	ByCoupling    []RankEntry `json:"by_coupling,omitempty"`
	ByTestability []RankEntry `json:"by_testability,omitempty"`
}

// Summary holds project-wide health.
type Summary struct {
	OverallHealth float64 `json:"overall_health"`
	Category      string  `json:"category"`
	BestModule    string  `json:"best_module,omitempty"`
	WorstModule   string  `json:"worst_module,omitempty"`
}

// Analysis is the health scorer's result.
type Analysis struct {
	Modules  map[string]*ModuleHealth `json:"modules"`
	Rankings Rankings                 `json:"rankings"`
	Summary  Summary                  `json:"summary"`
}
