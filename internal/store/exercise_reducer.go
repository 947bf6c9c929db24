package store

import (
	"maps"

	"github.com/terraincognita07/fitnutri/internal/models"
)

func reduceExercise(state ExerciseState, action Action) ExerciseState {
	switch typed := action.(type) {
	case ToggleFavoriteExercise:
		index := indexOf(state.FavoriteExercises, func(id string) bool { return id == typed.ExerciseID })
		if index >= 0 {
			state.FavoriteExercises = filterCopy(state.FavoriteExercises, func(id string) bool { return id != typed.ExerciseID })
		} else {
			state.FavoriteExercises = appendCopy(state.FavoriteExercises, typed.ExerciseID)
		}
	case RecordExerciseCompletion:
		completion := typed.Completion
		state.CompletedExercises = appendCopy(state.CompletedExercises, completion)

		stats := make(map[string]models.ExerciseStat, len(state.ExerciseStats)+1)
		maps.Copy(stats, state.ExerciseStats)
		stats[completion.ExerciseID] = nextExerciseStat(stats[completion.ExerciseID], completion)
		state.ExerciseStats = stats
	}
	return state
}

func nextExerciseStat(stat models.ExerciseStat, completion models.ExerciseCompletion) models.ExerciseStat {
	stat.Sessions++
	if volume := float64(completion.TotalVolume); volume > stat.BestVolume {
		stat.BestVolume = volume
	}
	for _, set := range completion.Sets {
		if set.Completed && float64(set.Weight) > stat.MaxWeight {
			stat.MaxWeight = float64(set.Weight)
		}
	}
	if completion.Date.After(stat.LastPerformed) {
		stat.LastPerformed = completion.Date
	}
	return stat
}
