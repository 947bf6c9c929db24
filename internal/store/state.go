package store

import (
	"github.com/terraincognita07/fitnutri/internal/models"
	"github.com/terraincognita07/fitnutri/internal/persistence"
)

const (
	SliceUser      = "user"
	SliceWorkout   = "workout"
	SliceNutrition = "nutrition"
	SliceExercise  = "exercise"
	SliceProgress  = "progress"
)

var sliceKeys = map[string]string{
	SliceUser:      persistence.KeyUser,
	SliceWorkout:   persistence.KeyWorkoutPlans,
	SliceNutrition: persistence.KeyNutritionPlans,
	SliceExercise:  persistence.KeyExerciseData,
	SliceProgress:  persistence.KeyProgress,
}

// SliceNames lists the slices in persistence key order.
func SliceNames() []string {
	return []string{SliceUser, SliceWorkout, SliceNutrition, SliceProgress, SliceExercise}
}

// SliceKey returns the storage key a slice is persisted under.
func SliceKey(slice string) (string, bool) {
	key, ok := sliceKeys[slice]
	return key, ok
}

// State is the whole domain tree. Values handed out by Store share backing
// arrays with the store and must be treated as read-only.
type State struct {
	User      models.UserProfile `json:"user"`
	Workout   WorkoutState       `json:"workout"`
	Nutrition NutritionState     `json:"nutrition"`
	Exercise  ExerciseState      `json:"exercise"`
	Progress  ProgressState      `json:"progress"`
}

type WorkoutState struct {
	WorkoutPlans      []models.SavedWorkoutPlan `json:"workoutPlans"`
	CurrentPlan       *models.SavedWorkoutPlan  `json:"currentPlan"`
	CompletedWorkouts []models.CompletedWorkout `json:"completedWorkouts"`
}

type NutritionState struct {
	NutritionPlans []models.SavedNutritionPlan `json:"nutritionPlans"`
	CurrentPlan    *models.SavedNutritionPlan  `json:"currentPlan"`
	SavedRecipes   []models.SavedRecipe        `json:"savedRecipes"`
	MealLogs       []models.MealLog            `json:"mealLogs"`
}

type ExerciseState struct {
	FavoriteExercises  []string                       `json:"favoriteExercises"`
	CompletedExercises []models.ExerciseCompletion    `json:"completedExercises"`
	ExerciseStats      map[string]models.ExerciseStat `json:"exerciseStats"`
}

type ProgressState struct {
	BodyMeasurements []models.BodyMeasurement `json:"bodyMeasurements"`
	ProgressPhotos   []models.ProgressPhoto   `json:"progressPhotos"`
	Achievements     []models.Achievement     `json:"achievements"`
	Goals            models.ProgressGoals     `json:"goals"`
}

// Preloaded carries rehydrated slices. A nil field means the slice starts
// from its default.
type Preloaded struct {
	User      *models.UserProfile
	Workout   *WorkoutState
	Nutrition *NutritionState
	Exercise  *ExerciseState
	Progress  *ProgressState
}

func DefaultState() State {
	return State{
		User:      models.DefaultUserProfile(),
		Workout:   WorkoutState{}.normalized(),
		Nutrition: NutritionState{}.normalized(),
		Exercise:  ExerciseState{}.normalized(),
		Progress:  ProgressState{}.normalized(),
	}
}

func stateFrom(preloaded Preloaded) State {
	state := DefaultState()
	if preloaded.User != nil {
		state.User = normalizeProfile(*preloaded.User)
	}
	if preloaded.Workout != nil {
		state.Workout = preloaded.Workout.normalized()
	}
	if preloaded.Nutrition != nil {
		state.Nutrition = preloaded.Nutrition.normalized()
	}
	if preloaded.Exercise != nil {
		state.Exercise = preloaded.Exercise.normalized()
	}
	if preloaded.Progress != nil {
		state.Progress = preloaded.Progress.normalized()
	}
	return state
}

// Resolve returns the state preloaded describes, with defaults for nil
// slices and empty lists in place of nil ones.
func (preloaded Preloaded) Resolve() State {
	return stateFrom(preloaded)
}

// Slice returns the value persisted for the named slice.
func (state State) Slice(name string) (any, bool) {
	switch name {
	case SliceUser:
		return state.User, true
	case SliceWorkout:
		return state.Workout, true
	case SliceNutrition:
		return state.Nutrition, true
	case SliceExercise:
		return state.Exercise, true
	case SliceProgress:
		return state.Progress, true
	default:
		return nil, false
	}
}

// Preloaded returns every slice of state as explicitly present.
func (state State) Preloaded() Preloaded {
	user := state.User
	workout := state.Workout
	nutrition := state.Nutrition
	exercise := state.Exercise
	progress := state.Progress
	return Preloaded{
		User:      &user,
		Workout:   &workout,
		Nutrition: &nutrition,
		Exercise:  &exercise,
		Progress:  &progress,
	}
}

func normalizeProfile(profile models.UserProfile) models.UserProfile {
	if profile.FitnessGoals.Milestones == nil {
		profile.FitnessGoals.Milestones = []models.Milestone{}
	}
	if profile.Preferences.Equipment == nil {
		profile.Preferences.Equipment = []string{}
	}
	if profile.Preferences.DietaryPreferences == nil {
		profile.Preferences.DietaryPreferences = []string{}
	}
	if profile.Preferences.DietaryRestrictions == nil {
		profile.Preferences.DietaryRestrictions = []string{}
	}
	if profile.Preferences.WorkoutPreferences == nil {
		profile.Preferences.WorkoutPreferences = []string{}
	}
	return profile
}

func (state WorkoutState) normalized() WorkoutState {
	if state.WorkoutPlans == nil {
		state.WorkoutPlans = []models.SavedWorkoutPlan{}
	}
	if state.CompletedWorkouts == nil {
		state.CompletedWorkouts = []models.CompletedWorkout{}
	}
	return state
}

func (state NutritionState) normalized() NutritionState {
	if state.NutritionPlans == nil {
		state.NutritionPlans = []models.SavedNutritionPlan{}
	}
	if state.SavedRecipes == nil {
		state.SavedRecipes = []models.SavedRecipe{}
	}
	if state.MealLogs == nil {
		state.MealLogs = []models.MealLog{}
	}
	return state
}

func (state ExerciseState) normalized() ExerciseState {
	if state.FavoriteExercises == nil {
		state.FavoriteExercises = []string{}
	}
	if state.CompletedExercises == nil {
		state.CompletedExercises = []models.ExerciseCompletion{}
	}
	if state.ExerciseStats == nil {
		state.ExerciseStats = map[string]models.ExerciseStat{}
	}
	return state
}

func (state ProgressState) normalized() ProgressState {
	if state.BodyMeasurements == nil {
		state.BodyMeasurements = []models.BodyMeasurement{}
	}
	if state.ProgressPhotos == nil {
		state.ProgressPhotos = []models.ProgressPhoto{}
	}
	if state.Achievements == nil {
		state.Achievements = []models.Achievement{}
	}
	return state
}
