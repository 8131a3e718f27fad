package engine

import (
	"fmt"
	"math/rand/v2"
)

// RandomSource yields floats in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// globalSource uses the concurrency-safe top-level generator.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultRandom returns the process-wide random source.
func DefaultRandom() RandomSource { return globalSource{} }

const bmiHistoryWeeks = 8

// BMIHistory fakes a nine-point weekly trend that starts up to 1.5 away from
// the current BMI and settles on it, with ±0.3 jitter per point.
func BMIHistory(current float64, rnd RandomSource) []BMIPoint {
	start := current + (rnd.Float64()*2-1)*1.5
	points := make([]BMIPoint, 0, bmiHistoryWeeks+1)
	for i := bmiHistoryWeeks; i >= 0; i-- {
		trend := current + float64(i)*(start-current)/bmiHistoryWeeks
		points = append(points, BMIPoint{
			Week: fmt.Sprintf("W%d", bmiHistoryWeeks+1-i),
			BMI:  round1(trend + (rnd.Float64()*0.6 - 0.3)),
		})
	}
	return points
}

// WeeklyLoadSeries spreads the weekly load over the first days of a
// seven-slot week with ±5 jitter.
func WeeklyLoadSeries(weeklyLoad, days int, rnd RandomSource) []int {
	out := make([]int, 7)
	days = min(days, 7)
	for i := 0; i < days; i++ {
		out[i] = roundInt(float64(weeklyLoad)/float64(days) + (rnd.Float64()*10 - 5))
	}
	return out
}

// DietPie is [carbs, protein, fat] percent, rounded.
func DietPie(m Macros) []int {
	return []int{roundInt(m.CarbsPct), roundInt(m.ProteinPct), roundInt(m.FatPct)}
}

// BuildCharts assembles the presentation series for a result.
func BuildCharts(m Metrics, schedule ScheduleMeta, diet Diet, rnd RandomSource) Charts {
	return Charts{
		BMIHistory: BMIHistory(m.BMI, rnd),
		WeeklyLoad: WeeklyLoadSeries(schedule.WeeklyLoad, schedule.AdjustedDays, rnd),
		DietPie:    DietPie(diet.Macros),
	}
}
