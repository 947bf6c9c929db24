package models

import (
	"sort"
	"strings"
	"time"
)

var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

type WorkoutPlanDocument struct {
	WorkoutPlan WorkoutPlanBody `json:"workoutPlan"`
}

type WorkoutPlanBody struct {
	Name      string                 `json:"name"`
	Goal      string                 `json:"goal"`
	Level     string                 `json:"level"`
	Frequency FlexString             `json:"frequency"`
	Duration  FlexString             `json:"duration"`
	Schedule  map[string]DaySchedule `json:"schedule"`
	Warmup    string                 `json:"warmup"`
	Cooldown  string                 `json:"cooldown"`
	Notes     string                 `json:"notes"`
}

type DaySchedule struct {
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
}

type Exercise struct {
	Name         string     `json:"name"`
	MuscleGroup  string     `json:"muscleGroup"`
	Sets         FlexInt    `json:"sets"`
	Reps         FlexString `json:"reps"`
	Rest         FlexInt    `json:"rest"`
	Instructions string     `json:"instructions"`
}

type WorkoutPreferences struct {
	Goal             string   `json:"goal"`
	DaysPerWeek      string   `json:"daysPerWeek"`
	TimePerSession   string   `json:"timePerSession"`
	Level            string   `json:"level"`
	Equipment        []string `json:"equipment"`
	TargetAreas      []string `json:"targetAreas"`
	ExcludeExercises string   `json:"excludeExercises"`
}

type SavedWorkoutPlan struct {
	ID          string             `json:"id"`
	CreatedAt   time.Time          `json:"createdAt"`
	WorkoutPlan WorkoutPlanBody    `json:"workoutPlan"`
	Preferences WorkoutPreferences `json:"preferences"`
}

type CompletedWorkout struct {
	ID        string           `json:"id"`
	Date      time.Time        `json:"date"`
	Duration  FlexInt          `json:"duration"`
	PlanID    string           `json:"planId,omitempty"`
	Day       string           `json:"day,omitempty"`
	Exercises []LoggedExercise `json:"exercises"`
	Notes     string           `json:"notes"`
	Feeling   string           `json:"feeling"`
}

type LoggedExercise struct {
	Name string      `json:"name"`
	Sets []LoggedSet `json:"sets"`
}

type LoggedSet struct {
	Weight    FlexFloat `json:"weight"`
	Reps      FlexInt   `json:"reps"`
	Completed bool      `json:"completed"`
}

func DefaultWorkoutPreferences() WorkoutPreferences {
	return WorkoutPreferences{
		Goal:           "strength",
		DaysPerWeek:    "3",
		TimePerSession: "45",
		Level:          "intermediate",
		Equipment:      []string{"bodyweight", "dumbbell"},
		TargetAreas:    []string{},
	}
}

// NormalizeDayKey maps "Monday " and "MONDAY" to the schedule key "monday".
func NormalizeDayKey(day string) string {
	return strings.ToLower(strings.TrimSpace(day))
}

func IsWeekday(day string) bool {
	normalized := NormalizeDayKey(day)
	for _, weekday := range Weekdays {
		if weekday == normalized {
			return true
		}
	}
	return false
}

// NormalizeSchedule rewrites every key through NormalizeDayKey. Keys are
// visited in sorted order, so when two spellings name the same day the last
// in that order wins.
func NormalizeSchedule(schedule map[string]DaySchedule) map[string]DaySchedule {
	if schedule == nil {
		return nil
	}
	keys := make([]string, 0, len(schedule))
	for key := range schedule {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	normalized := make(map[string]DaySchedule, len(schedule))
	for _, key := range keys {
		normalized[NormalizeDayKey(key)] = schedule[key]
	}
	return normalized
}
