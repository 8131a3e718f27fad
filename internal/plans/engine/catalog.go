package engine

// Exercise types.
const (
	TypeStrength = "strength"
	TypeCardio   = "cardio"
	TypeCore     = "core"
	TypeMobility = "mobility"
)

// Catalog order doubles as selection priority.
var defaultCatalog = [...]Exercise{
	{ID: "s1", Name: "Bodyweight Squats", Type: TypeStrength, Difficulty: 1, Target: "legs"},
	{ID: "s2", Name: "Push-ups (knees/full)", Type: TypeStrength, Difficulty: 2, Target: "upper"},
	{ID: "s3", Name: "Walking / brisk walk", Type: TypeCardio, Difficulty: 1, Target: "cardio"},
	{ID: "s4", Name: "Stationary Bike", Type: TypeCardio, Difficulty: 2, Target: "cardio"},
	{ID: "s5", Name: "Dumbbell Rows", Type: TypeStrength, Difficulty: 3, Target: "upper"},
	{ID: "s6", Name: "Plank", Type: TypeCore, Difficulty: 2, Target: "core"},
	{ID: "s7", Name: "Lunges", Type: TypeStrength, Difficulty: 2, Target: "legs"},
	{ID: "s8", Name: "Jump Rope", Type: TypeCardio, Difficulty: 4, Target: "cardio"},
	{ID: "s9", Name: "Yoga Flow (20m)", Type: TypeMobility, Difficulty: 1, Target: "mobility"},
	{ID: "s10", Name: "Interval Treadmill", Type: TypeCardio, Difficulty: 5, Target: "cardio"},
}

// DefaultCatalog returns a copy of the built-in exercise catalog.
func DefaultCatalog() []Exercise {
	out := make([]Exercise, len(defaultCatalog))
	copy(out, defaultCatalog[:])
	return out
}

// FindExercise looks an exercise up by ID in the built-in catalog.
func FindExercise(id string) (Exercise, bool) {
	for _, e := range defaultCatalog {
		if e.ID == id {
			return e, true
		}
	}
	return Exercise{}, false
}
