package engine

const (
	MinIntensity = 0.4
	MaxIntensity = 1.3
)

func goalFactor(goal string) float64 {
	switch goal {
	case GoalMuscleGain:
		return 1.10
	case GoalFatLoss:
		return 1.05
	case GoalEndurance:
		return 1.00
	default:
		return 0.95
	}
}

// ResolveIntensity returns the session intensity multiplier. Out-of-range
// fatigue is not rejected; the final clamp bounds its effect.
func ResolveIntensity(goal string, fatigue float64, preferred *float64) float64 {
	pref := 1.0
	if preferred != nil {
		pref = *preferred
	}
	fatigueFactor := 1 - fatigue/12
	return round2(clamp(pref*fatigueFactor*goalFactor(goal), MinIntensity, MaxIntensity))
}
