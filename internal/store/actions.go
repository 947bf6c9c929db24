package store

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/fitnutri/internal/models"
)

// Action is a named state change. Type is "<slice>/<name>".
type Action interface {
	Type() string
}

type validator interface {
	Validate() error
}

// Stamp carries the ids and time Dispatch hands to actions that need them.
type Stamp struct {
	NewID func() string
	At    time.Time
}

type stampable interface {
	stamped(stamp Stamp) Action
}

const (
	TypeUpdateUser         = "user/updateUser"
	TypeUpdateUserSettings = "user/updateUserSettings"
	TypeUpdatePersonalInfo = "user/updatePersonalInfo"
	TypeUpdateFitnessGoals = "user/updateFitnessGoals"
	TypeUpdatePreferences  = "user/updatePreferences"
	TypeAddMilestone       = "user/addMilestone"
	TypeCompleteMilestone  = "user/completeMilestone"

	TypeAddWorkoutPlan        = "workout/addWorkoutPlan"
	TypeSetCurrentWorkoutPlan = "workout/setCurrentPlan"
	TypeUpdateWorkoutPlan     = "workout/updateWorkoutPlan"
	TypeDeleteWorkoutPlan     = "workout/deleteWorkoutPlan"
	TypeLogCompletedWorkout   = "workout/logCompletedWorkout"
	TypeUpdateWorkoutLog      = "workout/updateWorkoutLog"
	TypeDeleteWorkoutLog      = "workout/deleteWorkoutLog"

	TypeAddNutritionPlan        = "nutrition/addNutritionPlan"
	TypeSetCurrentNutritionPlan = "nutrition/setCurrentPlan"
	TypeUpdateNutritionPlan     = "nutrition/updateNutritionPlan"
	TypeDeleteNutritionPlan     = "nutrition/deleteNutritionPlan"
	TypeLogMeal                 = "nutrition/logMeal"
	TypeClearMealLogs           = "nutrition/clearMealLogs"
	TypeSaveRecipe              = "nutrition/saveRecipe"
	TypeDeleteRecipe            = "nutrition/deleteRecipe"

	TypeToggleFavoriteExercise   = "exercise/toggleFavoriteExercise"
	TypeRecordExerciseCompletion = "exercise/recordExerciseCompletion"

	TypeAddBodyMeasurement  = "progress/addBodyMeasurement"
	TypeUpdateMeasurement   = "progress/updateMeasurement"
	TypeDeleteMeasurement   = "progress/deleteMeasurement"
	TypeAddProgressPhoto    = "progress/addProgressPhoto"
	TypeRemoveProgressPhoto = "progress/removeProgressPhoto"
	TypeSetGoals            = "progress/setGoals"
	TypeAddAchievement      = "progress/addAchievement"
)

// SliceOf returns the slice prefix of an action type.
func SliceOf(actionType string) string {
	slice, _, found := strings.Cut(actionType, "/")
	if !found {
		return ""
	}
	return slice
}

var (
	errMissingID      = errors.New("id is required")
	errMissingDate    = errors.New("date is required")
	errMissingName    = errors.New("name is required")
	errPatchNotObject = errors.New("patch must be a JSON object")
)

// user

// UpdateUser shallow-merges Patch into the whole profile.
type UpdateUser struct{ Patch json.RawMessage }

type UpdateUserSettings struct{ Patch json.RawMessage }

type UpdatePersonalInfo struct{ Patch json.RawMessage }

type UpdateFitnessGoals struct{ Patch json.RawMessage }

type UpdatePreferences struct{ Patch json.RawMessage }

type AddMilestone struct {
	Milestone models.Milestone
}

type CompleteMilestone struct {
	ID string
	At time.Time
}

func (UpdateUser) Type() string         { return TypeUpdateUser }
func (UpdateUserSettings) Type() string { return TypeUpdateUserSettings }
func (UpdatePersonalInfo) Type() string { return TypeUpdatePersonalInfo }
func (UpdateFitnessGoals) Type() string { return TypeUpdateFitnessGoals }
func (UpdatePreferences) Type() string  { return TypeUpdatePreferences }
func (AddMilestone) Type() string       { return TypeAddMilestone }
func (CompleteMilestone) Type() string  { return TypeCompleteMilestone }

func (action UpdateUser) Validate() error {
	return validatePatch[models.UserProfile](action.Patch)
}

func (action UpdateUserSettings) Validate() error {
	return validatePatch[models.Settings](action.Patch)
}

func (action UpdatePersonalInfo) Validate() error {
	return validatePatch[models.PersonalInfo](action.Patch)
}

func (action UpdateFitnessGoals) Validate() error {
	return validatePatch[models.FitnessGoals](action.Patch)
}

func (action UpdatePreferences) Validate() error {
	return validatePatch[models.Preferences](action.Patch)
}

func (action AddMilestone) Validate() error {
	if strings.TrimSpace(action.Milestone.Title) == "" {
		return errors.New("milestone title is required")
	}
	return nil
}

func (action AddMilestone) stamped(stamp Stamp) Action {
	action.Milestone.ID = stamp.NewID()
	if action.Milestone.Date.IsZero() {
		action.Milestone.Date = stamp.At
	}
	return action
}

func (action CompleteMilestone) Validate() error {
	return requireID(action.ID)
}

func (action CompleteMilestone) stamped(stamp Stamp) Action {
	action.At = stamp.At
	return action
}

// workout

// AddWorkoutPlan saves a generated plan. ID is allocated by the store unless
// the caller already reserved one with Store.NewID.
type AddWorkoutPlan struct {
	ID          string
	CreatedAt   time.Time
	WorkoutPlan models.WorkoutPlanBody
	Preferences models.WorkoutPreferences
}

// SetCurrentWorkoutPlan replaces the pointer outright; nil clears it.
type SetCurrentWorkoutPlan struct {
	Plan *models.SavedWorkoutPlan
}

type UpdateWorkoutPlan struct {
	ID    string
	Patch json.RawMessage
}

type DeleteWorkoutPlan struct{ ID string }

type LogCompletedWorkout struct {
	Workout models.CompletedWorkout
}

type UpdateWorkoutLog struct {
	ID    string
	Patch json.RawMessage
}

type DeleteWorkoutLog struct{ ID string }

func (AddWorkoutPlan) Type() string        { return TypeAddWorkoutPlan }
func (SetCurrentWorkoutPlan) Type() string { return TypeSetCurrentWorkoutPlan }
func (UpdateWorkoutPlan) Type() string     { return TypeUpdateWorkoutPlan }
func (DeleteWorkoutPlan) Type() string     { return TypeDeleteWorkoutPlan }
func (LogCompletedWorkout) Type() string   { return TypeLogCompletedWorkout }
func (UpdateWorkoutLog) Type() string      { return TypeUpdateWorkoutLog }
func (DeleteWorkoutLog) Type() string      { return TypeDeleteWorkoutLog }

func (action AddWorkoutPlan) stamped(stamp Stamp) Action {
	if action.ID == "" {
		action.ID = stamp.NewID()
	}
	action.CreatedAt = stamp.At
	action.WorkoutPlan.Schedule = models.NormalizeSchedule(action.WorkoutPlan.Schedule)
	return action
}

func (action UpdateWorkoutPlan) Validate() error {
	if err := requireID(action.ID); err != nil {
		return err
	}
	return validatePatch[models.SavedWorkoutPlan](action.Patch)
}

func (action DeleteWorkoutPlan) Validate() error {
	return requireID(action.ID)
}

func (action LogCompletedWorkout) stamped(stamp Stamp) Action {
	if action.Workout.ID == "" {
		action.Workout.ID = stamp.NewID()
	}
	if action.Workout.Date.IsZero() {
		action.Workout.Date = stamp.At
	}
	action.Workout.Day = models.NormalizeDayKey(action.Workout.Day)
	return action
}

func (action UpdateWorkoutLog) Validate() error {
	if err := requireID(action.ID); err != nil {
		return err
	}
	return validatePatch[models.CompletedWorkout](action.Patch)
}

func (action DeleteWorkoutLog) Validate() error {
	return requireID(action.ID)
}

// nutrition

type AddNutritionPlan struct {
	ID            string
	CreatedAt     time.Time
	NutritionPlan models.NutritionPlanBody
	Preferences   models.NutritionPreferences
}

type SetCurrentNutritionPlan struct {
	Plan *models.SavedNutritionPlan
}

type UpdateNutritionPlan struct {
	ID    string
	Patch json.RawMessage
}

type DeleteNutritionPlan struct{ ID string }

// LogMeal records a meal against the current plan unless PlanID is set.
type LogMeal struct {
	Meal models.MealLog
}

type ClearMealLogs struct{}

// SaveRecipe is ignored when a recipe with the same name, compared without
// case, is already saved.
type SaveRecipe struct {
	ID      string
	SavedAt time.Time
	Recipe  models.RecipeBody
}

type DeleteRecipe struct{ ID string }

func (AddNutritionPlan) Type() string        { return TypeAddNutritionPlan }
func (SetCurrentNutritionPlan) Type() string { return TypeSetCurrentNutritionPlan }
func (UpdateNutritionPlan) Type() string     { return TypeUpdateNutritionPlan }
func (DeleteNutritionPlan) Type() string     { return TypeDeleteNutritionPlan }
func (LogMeal) Type() string                 { return TypeLogMeal }
func (ClearMealLogs) Type() string           { return TypeClearMealLogs }
func (SaveRecipe) Type() string              { return TypeSaveRecipe }
func (DeleteRecipe) Type() string            { return TypeDeleteRecipe }

func (action AddNutritionPlan) stamped(stamp Stamp) Action {
	if action.ID == "" {
		action.ID = stamp.NewID()
	}
	action.CreatedAt = stamp.At
	return action
}

func (action UpdateNutritionPlan) Validate() error {
	if err := requireID(action.ID); err != nil {
		return err
	}
	return validatePatch[models.SavedNutritionPlan](action.Patch)
}

func (action DeleteNutritionPlan) Validate() error {
	return requireID(action.ID)
}

func (action LogMeal) stamped(stamp Stamp) Action {
	if action.Meal.ID == "" {
		action.Meal.ID = stamp.NewID()
	}
	if action.Meal.Date.IsZero() {
		action.Meal.Date = stamp.At
	}
	return action
}

func (action SaveRecipe) Validate() error {
	if strings.TrimSpace(action.Recipe.Name) == "" {
		return errMissingName
	}
	return nil
}

func (action SaveRecipe) stamped(stamp Stamp) Action {
	if action.ID == "" {
		action.ID = stamp.NewID()
	}
	action.SavedAt = stamp.At
	return action
}

func (action DeleteRecipe) Validate() error {
	return requireID(action.ID)
}

// exercise

type ToggleFavoriteExercise struct {
	ExerciseID string
}

type RecordExerciseCompletion struct {
	Completion models.ExerciseCompletion
}

func (ToggleFavoriteExercise) Type() string   { return TypeToggleFavoriteExercise }
func (RecordExerciseCompletion) Type() string { return TypeRecordExerciseCompletion }

// exerciseReference is implemented by actions that name a catalog exercise.
type exerciseReference interface {
	exerciseID() string
}

func (action ToggleFavoriteExercise) exerciseID() string   { return action.ExerciseID }
func (action RecordExerciseCompletion) exerciseID() string { return action.Completion.ExerciseID }

func (action ToggleFavoriteExercise) Validate() error {
	return requireID(action.ExerciseID)
}

func (action RecordExerciseCompletion) Validate() error {
	return requireID(action.Completion.ExerciseID)
}

func (action RecordExerciseCompletion) stamped(stamp Stamp) Action {
	if action.Completion.ID == "" {
		action.Completion.ID = action.Completion.ExerciseID + "_" + stamp.NewID()
	}
	if action.Completion.Date.IsZero() {
		action.Completion.Date = stamp.At
	}
	if action.Completion.TotalVolume == 0 {
		action.Completion.TotalVolume = models.FlexFloat(models.CompletedVolume(action.Completion.Sets))
	}
	return action
}

// progress

// AddBodyMeasurement upserts by the exact Date string.
type AddBodyMeasurement struct {
	Measurement models.BodyMeasurement
}

// UpdateMeasurement merges the set fields of Measurement into the entry with
// the same id.
type UpdateMeasurement struct {
	Measurement models.BodyMeasurement
}

type DeleteMeasurement struct{ ID string }

type AddProgressPhoto struct {
	Photo         models.ProgressPhoto
	AchievementID string
	At            time.Time
}

type RemoveProgressPhoto struct{ ID string }

type SetGoals struct{ Patch json.RawMessage }

// AddAchievement is ignored when an achievement with the same id exists.
type AddAchievement struct {
	Achievement models.Achievement
}

func (AddBodyMeasurement) Type() string  { return TypeAddBodyMeasurement }
func (UpdateMeasurement) Type() string   { return TypeUpdateMeasurement }
func (DeleteMeasurement) Type() string   { return TypeDeleteMeasurement }
func (AddProgressPhoto) Type() string    { return TypeAddProgressPhoto }
func (RemoveProgressPhoto) Type() string { return TypeRemoveProgressPhoto }
func (SetGoals) Type() string            { return TypeSetGoals }
func (AddAchievement) Type() string      { return TypeAddAchievement }

func (action AddBodyMeasurement) Validate() error {
	if strings.TrimSpace(action.Measurement.Date) == "" {
		return errMissingDate
	}
	return nil
}

func (action AddBodyMeasurement) stamped(stamp Stamp) Action {
	if action.Measurement.ID == "" {
		action.Measurement.ID = stamp.NewID()
	}
	return action
}

func (action UpdateMeasurement) Validate() error {
	return requireID(action.Measurement.ID)
}

func (action DeleteMeasurement) Validate() error {
	return requireID(action.ID)
}

func (action AddProgressPhoto) Validate() error {
	if strings.TrimSpace(action.Photo.Src) == "" {
		return errors.New("photo src is required")
	}
	return nil
}

func (action AddProgressPhoto) stamped(stamp Stamp) Action {
	if action.Photo.ID == "" {
		action.Photo.ID = stamp.NewID()
	}
	if action.Photo.Date == "" {
		action.Photo.Date = stamp.At.Format(time.RFC3339)
	}
	action.AchievementID = "first-photo-" + stamp.NewID()
	action.At = stamp.At
	return action
}

func (action RemoveProgressPhoto) Validate() error {
	return requireID(action.ID)
}

func (action SetGoals) Validate() error {
	return validatePatch[models.ProgressGoals](action.Patch)
}

func (action AddAchievement) Validate() error {
	return requireID(action.Achievement.ID)
}

func (action AddAchievement) stamped(stamp Stamp) Action {
	if action.Achievement.Date.IsZero() {
		action.Achievement.Date = stamp.At
	}
	return action
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errMissingID
	}
	return nil
}
