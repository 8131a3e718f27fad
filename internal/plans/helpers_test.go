package plans

import (
	"time"

	"fitsynth-backend/internal/plans/engine"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleRequest() GenerateRequest {
	age, height, weight := 30.0, 175.0, 74.0
	fatigue := 2.0
	minutes, days := 45, 3
	return GenerateRequest{
		Age:            &age,
		Height:         &height,
		Weight:         &weight,
		Sex:            "male",
		Activity:       "moderate",
		Goal:           "fat_loss",
		Fatigue:        &fatigue,
		SessionMinutes: &minutes,
		DaysPerWeek:    &days,
		TimeOfDay:      "evening",
	}
}

func sampleInput() engine.Input {
	in, err := sampleRequest().ToInput()
	if err != nil {
		panic(err)
	}
	return in
}

// samplePlan builds a stored plan created minutes after baseTime.
func samplePlan(id, userID string, minutes int) Plan {
	at := baseTime.Add(time.Duration(minutes) * time.Minute)
	eng := engine.New()
	eng.Now = func() time.Time { return at }
	in := sampleInput()
	return Plan{
		ID:                id,
		UserID:            userID,
		Input:             in,
		Result:            eng.Generate(in),
		ExplanationSource: ExplanationSourceRules,
		CreatedAt:         at,
	}
}

func planIDs(plans []Plan) []string {
	out := make([]string, 0, len(plans))
	for _, p := range plans {
		out = append(out, p.ID)
	}
	return out
}
