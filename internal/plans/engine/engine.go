// Package engine turns a user profile into a workout, weekly schedule, diet
// and explanation. Everything except the chart jitter and the timestamp is a
// pure function of the input; both of those come from injectable sources.
package engine

import "time"

// Engine generates plans. The zero value uses the built-in catalog, the
// process-wide random source and the wall clock.
type Engine struct {
	Catalog []Exercise
	Rand    RandomSource
	Now     func() time.Time
}

// New returns an Engine with default sources.
func New() *Engine {
	return &Engine{
		Catalog: DefaultCatalog(),
		Rand:    DefaultRandom(),
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

// Generate runs metrics, intensity, selection, scheduling, explanation and
// diet in that order and assembles the result. It is safe for concurrent use
// as long as the configured RandomSource is.
func (e *Engine) Generate(in Input) Result {
	catalog := e.Catalog
	if catalog == nil {
		catalog = defaultCatalog[:]
	}
	rnd := e.Rand
	if rnd == nil {
		rnd = DefaultRandom()
	}
	now := time.Now().UTC()
	if e.Now != nil {
		now = e.Now()
	}

	metrics := ComputeMetrics(in)
	intensity := ResolveIntensity(in.Goal, in.Fatigue, in.PreferredIntensity)
	plan := SelectExercises(catalog, metrics, in, intensity)
	schedule := ScheduleSessions(in, metrics, intensity)
	explanation := Explain(in, metrics, intensity, schedule)
	diet := RecommendDiet(in, plan, &schedule)

	return Result{
		Meta: Meta{
			Metrics:     metrics,
			Intensity:   intensity,
			GeneratedAt: now,
		},
		Plan:        plan,
		Schedule:    schedule,
		Explanation: explanation,
		Diet:        diet,
		Charts:      BuildCharts(metrics, schedule, diet, rnd),
	}
}
