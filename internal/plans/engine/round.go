package engine

import (
	"math"
	"strconv"
)

// round rounds half up, so -2.5 becomes -2 and 2.5 becomes 3.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

func roundInt(x float64) int {
	return int(round(x))
}

func round1(x float64) float64 {
	return round(x*10) / 10
}

func round2(x float64) float64 {
	return round(x*100) / 100
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func clampInt(x, lo, hi int) int {
	return max(lo, min(hi, x))
}

// formatNumber renders a number in its shortest form: 24.2, 0.79, 1.
func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
