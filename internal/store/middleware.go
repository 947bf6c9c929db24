package store

import (
	"github.com/hashicorp/go-hclog"
	"github.com/terraincognita07/fitnutri/internal/persistence"
)

// Persist writes the whole slice an action touched under that slice's key.
// A failed write is logged by the gateway and otherwise ignored.
func Persist(gateway *persistence.Gateway, logger hclog.Logger) Middleware {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("persist")

	return func(action Action, state State) {
		slice := SliceOf(action.Type())
		key, ok := SliceKey(slice)
		if !ok {
			return
		}
		value, _ := state.Slice(slice)
		if !gateway.Save(key, value) {
			logger.Warn("slice write dropped", "slice", slice, "action", action.Type())
		}
	}
}

// Rehydrate reads every slice key. Keys that are missing or do not decode
// stay nil so the slice default applies.
func Rehydrate(gateway *persistence.Gateway) Preloaded {
	var preloaded Preloaded

	user := DefaultState().User
	if gateway.LoadInto(persistence.KeyUser, &user) {
		preloaded.User = &user
	}
	var workout WorkoutState
	if gateway.LoadInto(persistence.KeyWorkoutPlans, &workout) {
		preloaded.Workout = &workout
	}
	var nutrition NutritionState
	if gateway.LoadInto(persistence.KeyNutritionPlans, &nutrition) {
		preloaded.Nutrition = &nutrition
	}
	var exercise ExerciseState
	if gateway.LoadInto(persistence.KeyExerciseData, &exercise) {
		preloaded.Exercise = &exercise
	}
	var progress ProgressState
	if gateway.LoadInto(persistence.KeyProgress, &progress) {
		preloaded.Progress = &progress
	}
	return preloaded
}
