package engine

import "math"

const (
	baseFitness = 60.0
	optimalBMI  = 22.0
	minFitness  = 10
)

var activityBoost = map[string]float64{
	ActivitySedentary: -10,
	ActivityLight:     0,
	ActivityModerate:  10,
	ActivityActive:    18,
}

// ComputeMetrics derives BMI and the 10-100 fitness baseline. Unknown
// activity levels get no boost. The BMI penalty uses the unrounded BMI.
func ComputeMetrics(in Input) Metrics {
	heightM := in.Height / 100
	bmi := in.Weight / (heightM * heightM)

	agePenalty := math.Max(0, (in.Age-30)*0.5)
	bmiPenalty := math.Max(0, (bmi-optimalBMI)*1.5)
	score := roundInt(baseFitness + activityBoost[in.Activity] - agePenalty - bmiPenalty)

	return Metrics{
		BMI:          round1(bmi),
		FitnessScore: max(minFitness, score),
	}
}
