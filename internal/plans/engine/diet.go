package engine

import (
	"fmt"
	"math"
	"strings"
)

var activityFactor = map[string]float64{
	ActivitySedentary: 1.2,
	ActivityLight:     1.375,
	ActivityModerate:  1.55,
	ActivityActive:    1.725,
}

const defaultActivityFactor = 1.55

type mealSplit struct {
	name    string
	portion float64
	example string
}

var mealSplits = []mealSplit{
	{name: "Breakfast", portion: 0.25, example: "Oats, milk, banana, whey — approx %dg protein"},
	{name: "Lunch", portion: 0.35, example: "Chicken, rice, vegetables — approx %dg protein"},
	{name: "Dinner", portion: 0.30, example: "Salmon, sweet potato, salad — approx %dg protein"},
	{name: "Snack", portion: 0.10, example: "Greek yogurt & nuts — approx %dg protein"},
}

// BMR is the Mifflin-St Jeor resting energy. A sex starting with "m" uses the
// male constant, anything else the female one.
func BMR(in Input) float64 {
	base := 10*in.Weight + 6.25*in.Height - 5*in.Age
	if strings.HasPrefix(strings.ToLower(in.Sex), "m") {
		return base + 5
	}
	return base - 161
}

// Composition is the strength/cardio split of a plan's main parts.
type Composition struct {
	StrengthRatio float64
	CardioRatio   float64
}

// PlanComposition measures the plan. The walk only reads bounds-checked
// fields, so it has no failure mode; a plan with no minutes counts as an
// even split.
func PlanComposition(plan Plan) Composition {
	var total, strength, cardio int
	for _, p := range plan.MainParts {
		minutes := p.Minutes
		if minutes == 0 {
			for _, it := range p.Items {
				minutes += it.DurationMin
			}
		}
		total += minutes

		label := strings.ToLower(p.Section)
		if strings.Contains(label, TypeStrength) {
			strength += minutes
		}
		if strings.Contains(label, TypeCardio) {
			cardio += minutes
		}
		// Featured minutes land in total a second time, as they always have.
		if strings.Contains(label, strings.ToLower(featuredSection)) && len(p.Items) > 0 && p.Items[0].DurationMin != 0 {
			m := p.Items[0].DurationMin
			title := strings.ToLower(p.Items[0].Name)
			if classify(featuredCardioRules[:], title, TypeStrength) == TypeCardio {
				cardio += m
			} else {
				strength += m
			}
			total += m
		}
	}

	if total == 0 {
		return Composition{StrengthRatio: 0.5, CardioRatio: 0.5}
	}
	return Composition{
		StrengthRatio: float64(strength) / float64(total),
		CardioRatio:   float64(cardio) / float64(total),
	}
}

// RecommendDiet derives calories, macros and the meal split. schedule may be
// nil, in which case the weekly load is estimated from the profile.
func RecommendDiet(in Input, plan Plan, schedule *ScheduleMeta) Diet {
	factor, ok := activityFactor[in.Activity]
	if !ok {
		factor = defaultActivityFactor
	}
	tdee := round(BMR(in) * factor)

	switch in.Goal {
	case GoalFatLoss:
		tdee = round(tdee * 0.85)
	case GoalMuscleGain:
		tdee = round(tdee * 1.12)
	}

	load := 0
	if schedule != nil {
		load = schedule.WeeklyLoad
	}
	if load == 0 {
		days := in.DaysPerWeek
		if days == 0 {
			days = 3
		}
		load = in.SessionMinutes * days
	}
	if load > 400 {
		tdee = round(tdee * 1.08)
	} else if load < 200 {
		tdee = round(tdee * 0.98)
	}

	comp := PlanComposition(plan)

	proteinG := roundInt(1.8 * in.Weight)
	fatG := roundInt(0.8 * in.Weight)
	if comp.StrengthRatio > 0.55 || in.Goal == GoalMuscleGain {
		proteinG = roundInt(2.2 * in.Weight)
	}
	if comp.CardioRatio > 0.55 || in.Goal == GoalEndurance {
		fatG = roundInt(float64(fatG) * 0.95)
		tdee = round(tdee * 1.04)
	}

	proteinCal := float64(proteinG * 4)
	fatCal := float64(fatG * 9)
	carbsCal := math.Max(0, tdee-proteinCal-fatCal)

	macros := Macros{
		ProteinG: proteinG,
		FatG:     fatG,
		CarbsG:   roundInt(carbsCal / 4),
	}
	if tdee > 0 {
		macros.ProteinPct = proteinCal / tdee * 100
		macros.FatPct = fatCal / tdee * 100
		macros.CarbsPct = carbsCal / tdee * 100
	}

	meals := make([]Meal, 0, len(mealSplits))
	for _, s := range mealSplits {
		protein := roundInt(float64(macros.ProteinG) * s.portion)
		meals = append(meals, Meal{
			Name:    s.name,
			Kcal:    roundInt(tdee * s.portion),
			Protein: protein,
			Fat:     roundInt(float64(macros.FatG) * s.portion),
			Carbs:   roundInt(float64(macros.CarbsG) * s.portion),
			Example: fmt.Sprintf(s.example, protein),
		})
	}

	return Diet{Calories: int(tdee), Macros: macros, Meals: meals}
}
