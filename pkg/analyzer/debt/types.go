package debt

// Issue kinds priced by the cost table.
const (
	KindVeryHighComplexity = "very_high_complexity"
	KindHighComplexity     = "high_complexity"
	KindLowMaintainability = "low_maintainability"
	KindGodClass           = "god_class"
	KindGodMethod          = "god_method"
	KindLongMethod         = "long_method"
	KindLongParameterList  = "long_parameter_list"
	KindDeepNesting        = "deep_nesting"
	KindDuplicateCode      = "duplicate_code"
	KindOtherTableWrite    = "other_table_write"
	KindOtherTableRead     = "other_table_read"
	KindLowCohesion        = "low_cohesion"
	KindHighFanOut         = "high_fan_out"
)

// SQALE ratings by debt ratio.
const (
	RatingA = "A" // <= 5%
	RatingB = "B" // <= 10%
	RatingC = "C" // <= 20%
	RatingD = "D" // <= 50%
	RatingE = "E" // > 50%
)

// RatingFor maps a debt ratio onto the SQALE scale.
func RatingFor(ratio float64) string {
	switch {
	case ratio <= 5:
		return RatingA
	case ratio <= 10:
		return RatingB
	case ratio <= 20:
		return RatingC
	case ratio <= 50:
		return RatingD
	default:
		return RatingE
	}
}

// ModuleDebt is one module's priced technical debt.
type ModuleDebt struct {
	Module           string             `json:"module"`
	Issues           map[string]int     `json:"issues,omitempty"`
	HoursByKind      map[string]float64 `json:"hours_by_kind,omitempty"`
	RemediationHours float64            `json:"remediation_hours"`
	RemediationDays  float64            `json:"remediation_days"`
	DevelopmentHours float64            `json:"development_hours"`
	DebtRatio        float64            `json:"debt_ratio"`
	Rating           string             `json:"rating"`
}

// Summary holds project-wide debt statistics.
type Summary struct {
	TotalIssues      int                `json:"total_issues"`
	HoursByKind      map[string]float64 `json:"hours_by_kind,omitempty"`
	RemediationHours float64            `json:"remediation_hours"`
	RemediationDays  float64            `json:"remediation_days"`
	DevelopmentHours float64            `json:"development_hours"`
	DebtRatio        float64            `json:"debt_ratio"`
	Rating           string             `json:"rating"`
}

// Analysis is the debt calculator's result.
type Analysis struct {
	Modules map[string]*ModuleDebt `json:"modules"`
	Summary Summary                `json:"summary"`
}
