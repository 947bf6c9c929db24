package store

// Reduce applies action to the slice its type names. Unknown actions return
// state unchanged.
func Reduce(state State, action Action) State {
	switch SliceOf(action.Type()) {
	case SliceUser:
		state.User = reduceUser(state.User, action)
	case SliceWorkout:
		state.Workout = reduceWorkout(state.Workout, action)
	case SliceNutrition:
		state.Nutrition = reduceNutrition(state.Nutrition, action)
	case SliceExercise:
		state.Exercise = reduceExercise(state.Exercise, action)
	case SliceProgress:
		state.Progress = reduceProgress(state.Progress, action)
	}
	return state
}
