package engine

import "time"

// Activity levels understood by the metrics and diet rules.
const (
	ActivitySedentary = "sedentary"
	ActivityLight     = "light"
	ActivityModerate  = "moderate"
	ActivityActive    = "active"
)

// Goals understood by the intensity, selection and diet rules.
const (
	GoalFatLoss    = "fat_loss"
	GoalMuscleGain = "muscle_gain"
	GoalEndurance  = "endurance"
	GoalGeneral    = "general"
)

// Input is the user profile a plan is generated from.
type Input struct {
	Height             float64          `json:"height" yaml:"height"`
	Weight             float64          `json:"weight" yaml:"weight"`
	Age                float64          `json:"age" yaml:"age"`
	Sex                string           `json:"sex,omitempty" yaml:"sex,omitempty"`
	Activity           string           `json:"activity" yaml:"activity"`
	Goal               string           `json:"goal" yaml:"goal"`
	Fatigue            float64          `json:"fatigue" yaml:"fatigue"`
	SessionMinutes     int              `json:"sessionMinutes" yaml:"sessionMinutes"`
	DaysPerWeek        int              `json:"daysPerWeek" yaml:"daysPerWeek"`
	TimeOfDay          string           `json:"timeOfDay,omitempty" yaml:"timeOfDay,omitempty"`
	Notes              string           `json:"notes,omitempty" yaml:"notes,omitempty"`
	SelectedWorkout    *FeaturedWorkout `json:"selectedWorkout,omitempty" yaml:"selectedWorkout,omitempty"`
	PreferredIntensity *float64         `json:"preferredIntensity,omitempty" yaml:"preferredIntensity,omitempty"`
}

// FeaturedWorkout is a library workout the user picked. It is never modified.
type FeaturedWorkout struct {
	ID          string   `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string   `json:"title" yaml:"title"`
	Duration    int      `json:"duration" yaml:"duration"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Exercise is a catalog entry.
type Exercise struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Type       string `json:"type" yaml:"type"`
	Difficulty int    `json:"difficulty" yaml:"difficulty"`
	Target     string `json:"target" yaml:"target"`
}

// Metrics holds the derived body metrics.
type Metrics struct {
	BMI          float64 `json:"bmi" yaml:"bmi"`
	FitnessScore int     `json:"fitnessScore" yaml:"fitnessScore"`
}

// Block is a fixed warm-up or cooldown entry.
type Block struct {
	Name     string `json:"name" yaml:"name"`
	Duration int    `json:"duration" yaml:"duration"`
	Notes    string `json:"notes" yaml:"notes"`
}

// PlanItem is one prescribed exercise. Strength items carry sets and reps,
// cardio and featured items carry a duration.
type PlanItem struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Difficulty  int    `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Target      string `json:"target,omitempty" yaml:"target,omitempty"`
	Sets        int    `json:"sets,omitempty" yaml:"sets,omitempty"`
	Reps        int    `json:"reps,omitempty" yaml:"reps,omitempty"`
	DurationMin int    `json:"durationMin,omitempty" yaml:"durationMin,omitempty"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// MainPart is a labeled section of the session body.
type MainPart struct {
	Section string     `json:"section" yaml:"section"`
	Items   []PlanItem `json:"items" yaml:"items"`
	Minutes int        `json:"minutes" yaml:"minutes"`
}

// Plan is the single-session workout.
type Plan struct {
	Warmup    []Block    `json:"warmup" yaml:"warmup"`
	MainParts []MainPart `json:"mainParts" yaml:"mainParts"`
	Auxiliary []PlanItem `json:"auxiliary,omitempty" yaml:"auxiliary,omitempty"`
	Cooldown  []Block    `json:"cooldown" yaml:"cooldown"`
}

// Session is one scheduled training day.
type Session struct {
	Day   string `json:"day" yaml:"day"`
	Time  string `json:"time" yaml:"time"`
	Load  int    `json:"load" yaml:"load"`
	Notes string `json:"notes" yaml:"notes"`
}

// ScheduleMeta is the weekly schedule plus the numbers it was derived from.
// WeeklyLoad is the load before any comfort-threshold reduction.
type ScheduleMeta struct {
	Schedule     []Session `json:"schedule" yaml:"schedule"`
	AdjustedDays int       `json:"adjustedDays" yaml:"adjustedDays"`
	WeeklyLoad   int       `json:"weeklyLoad" yaml:"weeklyLoad"`
	AdjustAdvice string    `json:"adjustAdvice,omitempty" yaml:"adjustAdvice,omitempty"`
}

// Macros are daily macro targets. Percentages are of calories and are not rounded.
type Macros struct {
	ProteinG   int     `json:"protein_g" yaml:"protein_g"`
	FatG       int     `json:"fat_g" yaml:"fat_g"`
	CarbsG     int     `json:"carbs_g" yaml:"carbs_g"`
	ProteinPct float64 `json:"proteinPct" yaml:"proteinPct"`
	FatPct     float64 `json:"fatPct" yaml:"fatPct"`
	CarbsPct   float64 `json:"carbsPct" yaml:"carbsPct"`
}

// Meal is one slice of the daily split.
type Meal struct {
	Name    string `json:"name" yaml:"name"`
	Kcal    int    `json:"kcal" yaml:"kcal"`
	Protein int    `json:"protein" yaml:"protein"`
	Fat     int    `json:"fat" yaml:"fat"`
	Carbs   int    `json:"carbs" yaml:"carbs"`
	Example string `json:"example" yaml:"example"`
}

// Diet is the daily nutrition recommendation.
type Diet struct {
	Calories int    `json:"calories" yaml:"calories"`
	Macros   Macros `json:"macros" yaml:"macros"`
	Meals    []Meal `json:"meals" yaml:"meals"`
}

// BMIPoint is one week of the decorative BMI trend.
type BMIPoint struct {
	Week string  `json:"week" yaml:"week"`
	BMI  float64 `json:"bmi" yaml:"bmi"`
}

// Charts are presentation series. Only this and Meta.GeneratedAt vary between runs.
type Charts struct {
	BMIHistory []BMIPoint `json:"bmiHistory" yaml:"bmiHistory"`
	WeeklyLoad []int      `json:"weeklyLoad" yaml:"weeklyLoad"`
	DietPie    []int      `json:"dietPie" yaml:"dietPie"`
}

// Meta carries the headline numbers of a generated plan.
type Meta struct {
	Metrics     Metrics   `json:"metrics" yaml:"metrics"`
	Intensity   float64   `json:"intensity" yaml:"intensity"`
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`
}

// Result is the full generated plan.
type Result struct {
	Meta        Meta         `json:"meta" yaml:"meta"`
	Plan        Plan         `json:"plan" yaml:"plan"`
	Schedule    ScheduleMeta `json:"schedule" yaml:"schedule"`
	Explanation string       `json:"explanation" yaml:"explanation"`
	Diet        Diet         `json:"diet" yaml:"diet"`
	Charts      Charts       `json:"charts" yaml:"charts"`
}
