package store

import "github.com/terraincognita07/fitnutri/internal/models"

func reduceWorkout(state WorkoutState, action Action) WorkoutState {
	switch typed := action.(type) {
	case AddWorkoutPlan:
		state.WorkoutPlans = appendCopy(state.WorkoutPlans, models.SavedWorkoutPlan{
			ID:          typed.ID,
			CreatedAt:   typed.CreatedAt,
			WorkoutPlan: typed.WorkoutPlan,
			Preferences: typed.Preferences,
		})
	case SetCurrentWorkoutPlan:
		state.CurrentPlan = typed.Plan
	case UpdateWorkoutPlan:
		index := indexOf(state.WorkoutPlans, func(plan models.SavedWorkoutPlan) bool { return plan.ID == typed.ID })
		if index < 0 {
			return state
		}
		merged, err := mergeShallow(state.WorkoutPlans[index], typed.Patch)
		if err != nil {
			return state
		}
		merged.ID = typed.ID
		state.WorkoutPlans = replaceCopy(state.WorkoutPlans, index, merged)
		if state.CurrentPlan != nil && state.CurrentPlan.ID == typed.ID {
			if current, err := mergeShallow(*state.CurrentPlan, typed.Patch); err == nil {
				current.ID = typed.ID
				state.CurrentPlan = &current
			}
		}
	case DeleteWorkoutPlan:
		state.WorkoutPlans = filterCopy(state.WorkoutPlans, func(plan models.SavedWorkoutPlan) bool { return plan.ID != typed.ID })
		if state.CurrentPlan != nil && state.CurrentPlan.ID == typed.ID {
			state.CurrentPlan = nil
		}
	case LogCompletedWorkout:
		state.CompletedWorkouts = appendCopy(state.CompletedWorkouts, typed.Workout)
	case UpdateWorkoutLog:
		index := indexOf(state.CompletedWorkouts, func(workout models.CompletedWorkout) bool { return workout.ID == typed.ID })
		if index < 0 {
			return state
		}
		if merged, err := mergeShallow(state.CompletedWorkouts[index], typed.Patch); err == nil {
			merged.ID = typed.ID
			state.CompletedWorkouts = replaceCopy(state.CompletedWorkouts, index, merged)
		}
	case DeleteWorkoutLog:
		state.CompletedWorkouts = filterCopy(state.CompletedWorkouts, func(workout models.CompletedWorkout) bool {
			return workout.ID != typed.ID
		})
	}
	return state
}
