package models

import "time"

const AchievementTypeProgressPhoto = "progress-photo"

type BodyMeasurement struct {
	ID      string   `json:"id"`
	Date    string   `json:"date"`
	Weight  *float64 `json:"weight,omitempty"`
	BodyFat *float64 `json:"bodyFat,omitempty"`
	Chest   *float64 `json:"chest,omitempty"`
	Waist   *float64 `json:"waist,omitempty"`
	Hips    *float64 `json:"hips,omitempty"`
	Arms    *float64 `json:"arms,omitempty"`
	Thighs  *float64 `json:"thighs,omitempty"`
}

// MergeFrom copies every field set on update; unset fields keep their value.
func (measurement BodyMeasurement) MergeFrom(update BodyMeasurement) BodyMeasurement {
	merged := measurement
	if update.Weight != nil {
		merged.Weight = update.Weight
	}
	if update.BodyFat != nil {
		merged.BodyFat = update.BodyFat
	}
	if update.Chest != nil {
		merged.Chest = update.Chest
	}
	if update.Waist != nil {
		merged.Waist = update.Waist
	}
	if update.Hips != nil {
		merged.Hips = update.Hips
	}
	if update.Arms != nil {
		merged.Arms = update.Arms
	}
	if update.Thighs != nil {
		merged.Thighs = update.Thighs
	}
	return merged
}

type ProgressPhoto struct {
	ID   string `json:"id"`
	Src  string `json:"src"`
	Date string `json:"date"`
	Type string `json:"type"`
}

type ProgressGoals struct {
	WeightGoal *float64 `json:"weightGoal"`
	TargetDate *string  `json:"targetDate"`
}

type Achievement struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Icon        string    `json:"icon,omitempty"`
}
