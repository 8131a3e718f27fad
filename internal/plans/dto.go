package plans

import (
	"math"
	"strings"
	"time"

	"fitsynth-backend/internal/plans/engine"
)

// Defaults applied to omitted optional profile fields.
const (
	DefaultSex            = "female"
	DefaultFatigue        = 2
	DefaultSessionMinutes = 30
	DefaultDaysPerWeek    = 3
	DefaultTimeOfDay      = "evening"
)

// GenerateRequest is the inbound profile. Pointers distinguish omitted from zero.
type GenerateRequest struct {
	Age                *float64                `json:"age" yaml:"age" jsonschema:"age in years"`
	Height             *float64                `json:"height" yaml:"height" jsonschema:"height in centimetres"`
	Weight             *float64                `json:"weight" yaml:"weight" jsonschema:"weight in kilograms"`
	Sex                string                  `json:"sex,omitempty" yaml:"sex,omitempty" jsonschema:"male or female (default female)"`
	Activity           string                  `json:"activity" yaml:"activity" jsonschema:"sedentary, light, moderate or active"`
	Goal               string                  `json:"goal" yaml:"goal" jsonschema:"fat_loss, muscle_gain, endurance or general"`
	Fatigue            *float64                `json:"fatigue,omitempty" yaml:"fatigue,omitempty" jsonschema:"perceived exertion 0-10 (default 2)"`
	SessionMinutes     *int                    `json:"sessionMinutes,omitempty" yaml:"sessionMinutes,omitempty" jsonschema:"minutes per session (default 30)"`
	DaysPerWeek        *int                    `json:"daysPerWeek,omitempty" yaml:"daysPerWeek,omitempty" jsonschema:"requested training days 1-7 (default 3)"`
	TimeOfDay          string                  `json:"timeOfDay,omitempty" yaml:"timeOfDay,omitempty" jsonschema:"preferred time of day (default evening)"`
	Notes              string                  `json:"notes,omitempty" yaml:"notes,omitempty" jsonschema:"free-form notes"`
	SelectedWorkout    *engine.FeaturedWorkout `json:"selectedWorkout,omitempty" yaml:"selectedWorkout,omitempty" jsonschema:"library workout to feature first"`
	PreferredIntensity *float64                `json:"preferredIntensity,omitempty" yaml:"preferredIntensity,omitempty" jsonschema:"intensity override, clamped to 0.4-1.3"`
}

// ToInput validates the request and fills defaults. Only basic range
// clamps are applied; unknown activity or goal values fall through to the
// engine's defaults.
func (r GenerateRequest) ToInput() (engine.Input, error) {
	var missing []string
	if r.Age == nil {
		missing = append(missing, "age")
	}
	if r.Height == nil {
		missing = append(missing, "height")
	}
	if r.Weight == nil {
		missing = append(missing, "weight")
	}
	if strings.TrimSpace(r.Activity) == "" {
		missing = append(missing, "activity")
	}
	if strings.TrimSpace(r.Goal) == "" {
		missing = append(missing, "goal")
	}
	if len(missing) > 0 {
		return engine.Input{}, &ValidationError{
			Message: "Missing required fields: " + strings.Join(missing, ", "),
			Fields:  missing,
		}
	}

	var invalid []string
	if !positive(*r.Height) {
		invalid = append(invalid, "height")
	}
	if !positive(*r.Weight) {
		invalid = append(invalid, "weight")
	}
	if !finite(*r.Age) || *r.Age < 0 {
		invalid = append(invalid, "age")
	}
	if len(invalid) > 0 {
		return engine.Input{}, &ValidationError{
			Message: "Invalid fields: " + strings.Join(invalid, ", "),
			Fields:  invalid,
		}
	}

	in := engine.Input{
		Height:             *r.Height,
		Weight:             *r.Weight,
		Age:                *r.Age,
		Sex:                orDefault(r.Sex, DefaultSex),
		Activity:           strings.ToLower(strings.TrimSpace(r.Activity)),
		Goal:               strings.ToLower(strings.TrimSpace(r.Goal)),
		Fatigue:            DefaultFatigue,
		SessionMinutes:     DefaultSessionMinutes,
		DaysPerWeek:        DefaultDaysPerWeek,
		TimeOfDay:          orDefault(r.TimeOfDay, DefaultTimeOfDay),
		Notes:              strings.TrimSpace(r.Notes),
		SelectedWorkout:    r.SelectedWorkout,
		PreferredIntensity: r.PreferredIntensity,
	}
	if r.Fatigue != nil && finite(*r.Fatigue) {
		in.Fatigue = math.Min(10, math.Max(0, *r.Fatigue))
	}
	if r.SessionMinutes != nil {
		in.SessionMinutes = max(0, *r.SessionMinutes)
	}
	if r.DaysPerWeek != nil {
		in.DaysPerWeek = min(7, max(1, *r.DaysPerWeek))
	}
	if in.PreferredIntensity != nil && !finite(*in.PreferredIntensity) {
		in.PreferredIntensity = nil
	}
	return in, nil
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func orDefault(v, def string) string {
	if trimmed := strings.TrimSpace(v); trimmed != "" {
		return trimmed
	}
	return def
}

// PlanResponse is the outward-facing plan record.
type PlanResponse struct {
	ID                string        `json:"id"`
	ExplanationSource string        `json:"explanationSource"`
	Exported          bool          `json:"exported"`
	CreatedAt         time.Time     `json:"createdAt"`
	Input             engine.Input  `json:"input"`
	Result            engine.Result `json:"result"`
}

// PlanSummary is a list entry.
type PlanSummary struct {
	ID           string    `json:"id"`
	Goal         string    `json:"goal"`
	BMI          float64   `json:"bmi"`
	FitnessScore int       `json:"fitnessScore"`
	Intensity    float64   `json:"intensity"`
	AdjustedDays int       `json:"adjustedDays"`
	Calories     int       `json:"calories"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ExportResponse describes a stored workbook.
type ExportResponse struct {
	PlanID      string `json:"planId"`
	SizeBytes   int64  `json:"sizeBytes"`
	DownloadURL string `json:"downloadUrl"`
}

func toResponse(p Plan) PlanResponse {
	return PlanResponse{
		ID:                p.ID,
		ExplanationSource: p.ExplanationSource,
		Exported:          p.ExportKey != "",
		CreatedAt:         p.CreatedAt,
		Input:             p.Input,
		Result:            p.Result,
	}
}

func toSummary(p Plan) PlanSummary {
	return PlanSummary{
		ID:           p.ID,
		Goal:         p.Input.Goal,
		BMI:          p.Result.Meta.Metrics.BMI,
		FitnessScore: p.Result.Meta.Metrics.FitnessScore,
		Intensity:    p.Result.Meta.Intensity,
		AdjustedDays: p.Result.Schedule.AdjustedDays,
		Calories:     p.Result.Diet.Calories,
		CreatedAt:    p.CreatedAt,
	}
}
