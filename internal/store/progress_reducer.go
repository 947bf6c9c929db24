package store

import "github.com/terraincognita07/fitnutri/internal/models"

func reduceProgress(state ProgressState, action Action) ProgressState {
	switch typed := action.(type) {
	case AddBodyMeasurement:
		index := indexOf(state.BodyMeasurements, func(measurement models.BodyMeasurement) bool {
			return measurement.Date == typed.Measurement.Date
		})
		if index >= 0 {
			merged := state.BodyMeasurements[index].MergeFrom(typed.Measurement)
			state.BodyMeasurements = replaceCopy(state.BodyMeasurements, index, merged)
			return state
		}
		state.BodyMeasurements = appendCopy(state.BodyMeasurements, typed.Measurement)
	case UpdateMeasurement:
		index := indexOf(state.BodyMeasurements, func(measurement models.BodyMeasurement) bool {
			return measurement.ID == typed.Measurement.ID
		})
		if index < 0 {
			return state
		}
		merged := state.BodyMeasurements[index].MergeFrom(typed.Measurement)
		if typed.Measurement.Date != "" {
			merged.Date = typed.Measurement.Date
		}
		state.BodyMeasurements = replaceCopy(state.BodyMeasurements, index, merged)
	case DeleteMeasurement:
		state.BodyMeasurements = filterCopy(state.BodyMeasurements, func(measurement models.BodyMeasurement) bool {
			return measurement.ID != typed.ID
		})
	case AddProgressPhoto:
		firstPhoto := len(state.ProgressPhotos) == 0
		state.ProgressPhotos = prependCopy(state.ProgressPhotos, typed.Photo)
		if firstPhoto && !hasAchievementType(state.Achievements, models.AchievementTypeProgressPhoto) {
			state.Achievements = appendCopy(state.Achievements, models.Achievement{
				ID:          typed.AchievementID,
				Type:        models.AchievementTypeProgressPhoto,
				Title:       "Visual Progress Tracker",
				Description: "You uploaded your first progress photo!",
				Date:        typed.At,
				Icon:        "📸",
			})
		}
	case RemoveProgressPhoto:
		state.ProgressPhotos = filterCopy(state.ProgressPhotos, func(photo models.ProgressPhoto) bool {
			return photo.ID != typed.ID
		})
	case SetGoals:
		if merged, err := mergeShallow(state.Goals, typed.Patch); err == nil {
			state.Goals = merged
		}
	case AddAchievement:
		exists := indexOf(state.Achievements, func(achievement models.Achievement) bool {
			return achievement.ID == typed.Achievement.ID
		}) >= 0
		if !exists {
			state.Achievements = appendCopy(state.Achievements, typed.Achievement)
		}
	}
	return state
}

func hasAchievementType(achievements []models.Achievement, achievementType string) bool {
	for _, achievement := range achievements {
		if achievement.Type == achievementType {
			return true
		}
	}
	return false
}
