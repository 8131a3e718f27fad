package engine

import (
	"math"
	"reflect"
	"testing"
)

func TestRecommendDietWorkedExample(t *testing.T) {
	in := exampleInput()
	m := ComputeMetrics(in)
	plan := SelectExercises(DefaultCatalog(), m, in, 0.79)
	schedule := ScheduleSessions(in, m, 0.79)
	diet := RecommendDiet(in, plan, &schedule)

	if diet.Calories != 2205 {
		t.Fatalf("calories = %d, want 2205", diet.Calories)
	}
	want := Macros{ProteinG: 154, FatG: 56, CarbsG: 271}
	got := diet.Macros
	if got.ProteinG != want.ProteinG || got.FatG != want.FatG || got.CarbsG != want.CarbsG {
		t.Fatalf("macros = %+v, want %+v", got, want)
	}
	if math.Abs(got.ProteinPct-27.936507936507937) > 1e-9 || math.Abs(got.CarbsPct-49.2063492063492) > 1e-9 {
		t.Fatalf("unexpected percentages: %+v", got)
	}

	wantMeals := []Meal{
		{Name: "Breakfast", Kcal: 551, Protein: 39, Fat: 14, Carbs: 68, Example: "Oats, milk, banana, whey — approx 39g protein"},
		{Name: "Lunch", Kcal: 772, Protein: 54, Fat: 20, Carbs: 95, Example: "Chicken, rice, vegetables — approx 54g protein"},
		{Name: "Dinner", Kcal: 662, Protein: 46, Fat: 17, Carbs: 81, Example: "Salmon, sweet potato, salad — approx 46g protein"},
		{Name: "Snack", Kcal: 221, Protein: 15, Fat: 6, Carbs: 27, Example: "Greek yogurt & nuts — approx 15g protein"},
	}
	if !reflect.DeepEqual(diet.Meals, wantMeals) {
		t.Fatalf("meals = %+v", diet.Meals)
	}

	// Meals are rounded on their own, so they need not add up to the daily total.
	sum := 0
	for _, meal := range diet.Meals {
		sum += meal.Kcal
	}
	if sum != 2206 {
		t.Fatalf("meal kcal sum = %d, want 2206 against %d daily", sum, diet.Calories)
	}
}

func TestRecommendDietProfiles(t *testing.T) {
	tests := []struct {
		name      string
		in        Input
		intensity float64
		calories  int
		macros    [3]int
	}{
		{
			name:      "muscle gain over load threshold",
			in:        Input{Height: 180, Weight: 80, Age: 25, Sex: "male", Activity: ActivityActive, Goal: GoalMuscleGain, SessionMinutes: 90, DaysPerWeek: 6},
			intensity: 1.1,
			calories:  3767,
			macros:    [3]int{176, 64, 622},
		},
		{
			name:      "endurance trims fat and adds calories",
			in:        Input{Height: 175, Weight: 72, Age: 28, Sex: "Male", Activity: ActivityActive, Goal: GoalEndurance, Fatigue: 1, SessionMinutes: 60, DaysPerWeek: 5},
			intensity: 0.92,
			calories:  3012,
			macros:    [3]int{130, 55, 499},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeMetrics(tt.in)
			plan := SelectExercises(DefaultCatalog(), m, tt.in, tt.intensity)
			schedule := ScheduleSessions(tt.in, m, tt.intensity)
			diet := RecommendDiet(tt.in, plan, &schedule)
			if diet.Calories != tt.calories {
				t.Fatalf("calories = %d, want %d", diet.Calories, tt.calories)
			}
			got := [3]int{diet.Macros.ProteinG, diet.Macros.FatG, diet.Macros.CarbsG}
			if got != tt.macros {
				t.Fatalf("macros = %v, want %v", got, tt.macros)
			}
		})
	}
}

func TestRecommendDietWithoutSchedule(t *testing.T) {
	in := exampleInput()
	in.SessionMinutes = 150
	in.DaysPerWeek = 0

	// Fallback load is 150 * 3 = 450, which earns the 8% bump.
	diet := RecommendDiet(in, Plan{}, nil)
	if diet.Calories != 2430 {
		t.Fatalf("calories = %d, want 2430", diet.Calories)
	}
	if same := RecommendDiet(in, Plan{}, &ScheduleMeta{}); same.Calories != diet.Calories {
		t.Fatalf("zero weekly load should fall back like a missing schedule")
	}
}

func TestRecommendDietNeverProducesNaN(t *testing.T) {
	diet := RecommendDiet(Input{Age: 200}, Plan{}, nil)
	m := diet.Macros
	for _, v := range []float64{m.ProteinPct, m.FatPct, m.CarbsPct} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("expected finite percentages, got %+v", m)
		}
	}
	if m.CarbsG != 0 {
		t.Fatalf("expected carbs clamped to 0, got %d", m.CarbsG)
	}
}

func TestPlanComposition(t *testing.T) {
	featured := func(section, title string) Plan {
		return Plan{MainParts: []MainPart{{
			Section: section,
			Items:   []PlanItem{{Name: title, DurationMin: 30}},
			Minutes: 30,
		}}}
	}

	tests := []struct {
		name string
		plan Plan
		want Composition
	}{
		{name: "empty plan is even", plan: Plan{}, want: Composition{StrengthRatio: 0.5, CardioRatio: 0.5}},
		{name: "featured run counts as cardio twice in total", plan: featured("Featured (selected)", "Morning Run"), want: Composition{StrengthRatio: 0, CardioRatio: 0.5}},
		{name: "featured yoga counts as strength", plan: featured("Featured (selected)", "Yoga"), want: Composition{StrengthRatio: 0.5, CardioRatio: 0}},
		{name: "featured without items is even", plan: Plan{MainParts: []MainPart{{Section: "Featured (selected)"}}}, want: Composition{StrengthRatio: 0.5, CardioRatio: 0.5}},
		{name: "featured with zero duration adds nothing", plan: Plan{MainParts: []MainPart{{Section: "Featured (selected)", Items: []PlanItem{{Name: "Run"}}}, {Section: "Strength", Minutes: 10}}}, want: Composition{StrengthRatio: 1, CardioRatio: 0}},
		{name: "classified featured uses its label", plan: featured("Cardio (selected)", "Spin"), want: Composition{StrengthRatio: 0, CardioRatio: 1}},
		{
			name: "minutes fall back to item durations",
			plan: Plan{MainParts: []MainPart{
				{Section: "Cardio", Items: []PlanItem{{DurationMin: 10}, {DurationMin: 10}}},
				{Section: "Strength", Minutes: 20},
			}},
			want: Composition{StrengthRatio: 0.5, CardioRatio: 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlanComposition(tt.plan); got != tt.want {
				t.Fatalf("PlanComposition = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBMR(t *testing.T) {
	in := Input{Height: 170, Weight: 70, Age: 30}
	if got := BMR(in); got != 1451.5 {
		t.Fatalf("female BMR = %v", got)
	}
	in.Sex = "Male"
	if got := BMR(in); got != 1617.5 {
		t.Fatalf("male BMR = %v", got)
	}
}
