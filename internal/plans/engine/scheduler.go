package engine

import (
	"fmt"
	"math"
)

const (
	// ComfortThreshold is the weekly load above which fewer sessions are advised.
	ComfortThreshold = 300

	highFatigue     = 7
	lowFitnessScore = 40
	defaultTime     = "evening"
)

var weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// TrainingDays applies the day-count policy in its fixed order: clamp to
// 1-7, drop a day under high fatigue, then hold low-fitness users to 2-4.
// The result never exceeds the clamped request.
func TrainingDays(requested int, fatigue float64, fitnessScore int) int {
	requested = clampInt(requested, 1, 7)
	days := requested
	if fatigue >= highFatigue {
		days = max(1, days-1)
	}
	if fitnessScore < lowFitnessScore {
		days = max(2, min(days, 4))
	}
	return min(days, requested)
}

// ScheduleSessions spreads the week's sessions from Monday. WeeklyLoad in the
// result is the load before any threshold reduction.
func ScheduleSessions(in Input, m Metrics, intensity float64) ScheduleMeta {
	days := TrainingDays(in.DaysPerWeek, in.Fatigue, m.FitnessScore)
	perDayLoad := roundInt(float64(in.SessionMinutes) * intensity)
	weeklyLoad := perDayLoad * days

	meta := ScheduleMeta{AdjustedDays: days, WeeklyLoad: weeklyLoad}
	if weeklyLoad > ComfortThreshold {
		meta.AdjustedDays = max(1, int(math.Floor(float64(ComfortThreshold)/float64(perDayLoad))))
		meta.AdjustAdvice = fmt.Sprintf(
			"Weekly load (%d) exceeds comfort threshold; reducing sessions to %d or lower intensity recommended.",
			weeklyLoad, meta.AdjustedDays,
		)
	}

	timeOfDay := in.TimeOfDay
	if timeOfDay == "" {
		timeOfDay = defaultTime
	}
	spacing := max(1, 7/max(1, meta.AdjustedDays))

	meta.Schedule = make([]Session, 0, meta.AdjustedDays)
	dayIdx := 0
	for i := 0; i < meta.AdjustedDays; i++ {
		meta.Schedule = append(meta.Schedule, Session{
			Day:   weekdays[dayIdx%7],
			Time:  timeOfDay,
			Load:  perDayLoad,
			Notes: sessionNote(i, meta.AdjustedDays),
		})
		dayIdx += spacing
	}
	return meta
}

// A lone session gets the closing note.
func sessionNote(i, n int) string {
	switch {
	case i == n-1:
		return "Lower intensity"
	case i == 0:
		return "Higher focus"
	default:
		return "Standard"
	}
}
