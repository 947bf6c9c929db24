package persistence

import "errors"

const (
	KeyUser           = "fitness_user"
	KeyWorkoutPlans   = "fitness_workoutPlans"
	KeyNutritionPlans = "fitness_nutritionPlans"
	KeyProgress       = "fitness_progress"
	KeyExerciseData   = "fitness_exerciseData"
)

var errCorruptValue = errors.New("stored value is not valid JSON")

// KnownKeys lists one key per domain slice.
func KnownKeys() []string {
	return []string{KeyUser, KeyWorkoutPlans, KeyNutritionPlans, KeyProgress, KeyExerciseData}
}
