package models

import "time"

type ExerciseCompletion struct {
	ID          string      `json:"id"`
	ExerciseID  string      `json:"exerciseId"`
	Date        time.Time   `json:"date"`
	Sets        []LoggedSet `json:"sets"`
	TotalVolume FlexFloat   `json:"totalVolume"`
	WorkoutID   string      `json:"workoutId,omitempty"`
}

type ExerciseStat struct {
	Sessions      int       `json:"sessions"`
	BestVolume    float64   `json:"bestVolume"`
	MaxWeight     float64   `json:"maxWeight"`
	LastPerformed time.Time `json:"lastPerformed"`
}

// CompletedVolume is weight x reps over completed sets.
func CompletedVolume(sets []LoggedSet) float64 {
	total := 0.0
	for _, set := range sets {
		if !set.Completed {
			continue
		}
		total += float64(set.Weight) * float64(set.Reps)
	}
	return total
}
