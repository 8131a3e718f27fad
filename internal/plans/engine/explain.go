package engine

import (
	"fmt"
	"math"
	"strings"
)

// Contribution is one weighted input shown in the explanation. Weights are
// presentation only and feed no other rule.
type Contribution struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

// Contributions returns the fixed-order input weights for a profile.
func Contributions(in Input, m Metrics) []Contribution {
	return []Contribution{
		{Name: "Current fatigue (RPE)", Value: math.Min(1, in.Fatigue/10), Weight: 0.35},
		{Name: "Fitness score (baseline)", Value: float64(m.FitnessScore) / 100, Weight: 0.30},
		{Name: "Goal", Value: 1, Weight: 0.15},
		{Name: "Available time per session", Value: math.Min(1, float64(in.SessionMinutes)/60), Weight: 0.10},
		{Name: "Days available/week", Value: math.Min(1, float64(in.DaysPerWeek)/7), Weight: 0.10},
	}
}

// Explain renders the plan rationale as newline separated text.
func Explain(in Input, m Metrics, intensity float64, schedule ScheduleMeta) string {
	lines := []string{
		fmt.Sprintf("We computed BMI=%s and fitness score=%d.", formatNumber(m.BMI), m.FitnessScore),
		fmt.Sprintf("Intensity multiplier chosen: %s (lower when fatigue is high, higher for muscle gain).", formatNumber(intensity)),
	}
	if schedule.AdjustAdvice != "" {
		lines = append(lines, schedule.AdjustAdvice)
	}
	if w := in.SelectedWorkout; w != nil && w.Title != "" {
		lines = append(lines, fmt.Sprintf("Included selected workout: %s (%d min).", w.Title, w.Duration))
	}
	lines = append(lines, "Top input contributions:")
	for _, c := range Contributions(in, m) {
		lines = append(lines, fmt.Sprintf("• %s — importance %d%% (value %s)",
			c.Name, roundInt(c.Weight*100), formatNumber(round2(c.Value))))
	}
	return strings.Join(lines, "\n")
}
