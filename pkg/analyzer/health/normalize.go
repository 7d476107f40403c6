package health

// Normalization curves. Every raw signal maps onto 0-100 where 100 is
// best, so the weighted composite stays on one scale.

// normalizeCoupling: zero severity is a perfect 100 and each severity
// point costs 2, bottoming out at 0 around severity 50. Cross-module
// writes (5 points each) therefore erase 10 health points apiece.
func normalizeCoupling(severity int) float64 {
	return clamp(100 - float64(severity)*2)
}

// normalizeComplexity maps average cyclomatic complexity piecewise:
//
//	1-5   excellent  100-80
//	6-10  good        80-60
//	11-20 moderate    60-20
//	21+   poor        20-0
func normalizeComplexity(avg float64) float64 {
	switch {
	case avg <= 0:
		return 100
	case avg <= 5:
		return clamp(100 - (avg-1)*5)
	case avg <= 10:
		return clamp(80 - (avg-5)*4)
	case avg <= 20:
		return clamp(60 - (avg-10)*4)
	default:
		return clamp(20 - (avg - 20))
	}
}

// normalizeMaintainability: the maintainability index is already 0-100.
func normalizeMaintainability(avgMI float64) float64 {
	return clamp(avgMI)
}

// normalizeTestability: the testability score is already 0-100.
func normalizeTestability(score float64) float64 {
	return clamp(score)
}

// normalizeSmells: one smell per thousand lines costs 10 points, so a
// module at 10 smells/KLOC has hit zero.
func normalizeSmells(perKLOC float64) float64 {
	return clamp(100 - perKLOC*10)
}

// normalizeDebt maps the SQALE debt ratio piecewise so each rating band
// occupies a fixed score range:
//
//	A (<=5%)   100-90
//	B (<=10%)   90-80
//	C (<=20%)   80-60
//	D (<=50%)   60-20
//	E (>50%)    20-0
func normalizeDebt(ratio float64) float64 {
	switch {
	case ratio <= 5:
		return clamp(100 - ratio*2)
	case ratio <= 10:
		return clamp(90 - (ratio-5)*2)
	case ratio <= 20:
		return clamp(80 - (ratio-10)*2)
	case ratio <= 50:
		return clamp(60 - (ratio-20)*1.33)
	default:
		return clamp(20 - (ratio-50)*0.4)
	}
}

// clamp bounds a score to [0, 100].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
