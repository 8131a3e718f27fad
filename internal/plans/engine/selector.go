package engine

import "math"

const (
	maxCardioItems    = 3
	maxStrengthItems  = 4
	maxAuxiliaryItems = 2

	minSessionMinutes  = 10
	minStrengthMinutes = 15
	minCardioMinutes   = 10
)

var (
	warmupBlock   = Block{Name: "Dynamic Warm-up", Duration: 5, Notes: "Joint mobility and light cardio"}
	cooldownBlock = Block{Name: "Cooldown & Stretching", Duration: 5, Notes: "Light stretching, breathing"}
)

// DifficultyBudget maps the fitness score onto a 1-4 difficulty ceiling.
func DifficultyBudget(fitnessScore int) int {
	return clampInt(roundInt(float64(fitnessScore-20)/20)+1, 1, 4)
}

func cardioShare(goal string) float64 {
	switch goal {
	case GoalEndurance:
		return 0.60
	case GoalFatLoss:
		return 0.45
	default:
		return 0.35
	}
}

// SelectExercises builds the session plan from the catalog. Catalog order is
// the priority order. Sections with nothing to show are dropped silently.
func SelectExercises(catalog []Exercise, m Metrics, in Input, intensity float64) Plan {
	gate := int(math.Ceil(float64(DifficultyBudget(m.FitnessScore)) * intensity))

	session := max(minSessionMinutes, in.SessionMinutes)
	featured := in.SelectedWorkout
	if featured != nil && featured.Duration > session {
		session = featured.Duration
	}
	cardioMin := roundInt(float64(session) * cardioShare(in.Goal))
	strengthMin := session - cardioMin

	var cardio, strength, auxiliary []Exercise
	for _, e := range catalog {
		switch e.Type {
		case TypeCardio:
			if e.Difficulty <= gate && len(cardio) < maxCardioItems {
				cardio = append(cardio, e)
			}
		case TypeStrength:
			if e.Difficulty <= gate && len(strength) < maxStrengthItems {
				strength = append(strength, e)
			}
		case TypeMobility, TypeCore:
			if len(auxiliary) < maxAuxiliaryItems {
				auxiliary = append(auxiliary, e)
			}
		}
	}

	plan := Plan{
		Warmup:    []Block{warmupBlock},
		MainParts: []MainPart{},
		Cooldown:  []Block{cooldownBlock},
	}

	if featured != nil {
		plan.MainParts = append(plan.MainParts, MainPart{
			Section: ClassifySection(featured.Tags) + " (selected)",
			Items: []PlanItem{{
				Name:        featured.Title,
				DurationMin: featured.Duration,
				Notes:       "From workout library",
			}},
			Minutes: featured.Duration,
		})
	}

	if strengthMin >= minStrengthMinutes && len(strength) > 0 {
		sets := max(2, roundInt(3*intensity))
		items := make([]PlanItem, 0, len(strength))
		for _, e := range strength {
			reps := 8
			if e.Difficulty <= 2 {
				reps = 12
			}
			item := catalogItem(e)
			item.Sets = sets
			item.Reps = reps
			items = append(items, item)
		}
		plan.MainParts = append(plan.MainParts, MainPart{Section: "Strength", Items: items, Minutes: strengthMin})
	}

	if cardioMin >= minCardioMinutes && len(cardio) > 0 {
		per := roundInt(float64(cardioMin) / float64(max(1, len(cardio))))
		items := make([]PlanItem, 0, len(cardio))
		for _, e := range cardio {
			item := catalogItem(e)
			item.DurationMin = per
			items = append(items, item)
		}
		plan.MainParts = append(plan.MainParts, MainPart{Section: "Cardio", Items: items, Minutes: cardioMin})
	}

	for _, e := range auxiliary {
		plan.Auxiliary = append(plan.Auxiliary, catalogItem(e))
	}

	return plan
}

func catalogItem(e Exercise) PlanItem {
	return PlanItem{
		ID:         e.ID,
		Name:       e.Name,
		Type:       e.Type,
		Difficulty: e.Difficulty,
		Target:     e.Target,
	}
}
