package store

import "github.com/terraincognita07/fitnutri/internal/models"

func reduceUser(state models.UserProfile, action Action) models.UserProfile {
	switch typed := action.(type) {
	case UpdateUser:
		if merged, err := mergeShallow(state, typed.Patch); err == nil {
			return normalizeProfile(merged)
		}
	case UpdateUserSettings:
		if merged, err := mergeShallow(state.Settings, typed.Patch); err == nil {
			state.Settings = merged
		}
	case UpdatePersonalInfo:
		if merged, err := mergeShallow(state.PersonalInfo, typed.Patch); err == nil {
			state.PersonalInfo = merged
		}
	case UpdateFitnessGoals:
		if merged, err := mergeShallow(state.FitnessGoals, typed.Patch); err == nil {
			state.FitnessGoals = merged
			return normalizeProfile(state)
		}
	case UpdatePreferences:
		if merged, err := mergeShallow(state.Preferences, typed.Patch); err == nil {
			state.Preferences = merged
			return normalizeProfile(state)
		}
	case AddMilestone:
		state.FitnessGoals.Milestones = appendCopy(state.FitnessGoals.Milestones, typed.Milestone)
	case CompleteMilestone:
		index := indexOf(state.FitnessGoals.Milestones, func(milestone models.Milestone) bool {
			return milestone.ID == typed.ID
		})
		if index < 0 {
			return state
		}
		completed := state.FitnessGoals.Milestones[index]
		completed.Completed = true
		completedAt := typed.At
		completed.CompletedDate = &completedAt
		state.FitnessGoals.Milestones = replaceCopy(state.FitnessGoals.Milestones, index, completed)
	}
	return state
}
