package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/terraincognita07/fitnutri/internal/models"
)

type actionDecoder func(payload json.RawMessage) (Action, error)

var actionDecoders = map[string]actionDecoder{
	TypeUpdateUser:         patchDecoder(func(patch json.RawMessage) Action { return UpdateUser{Patch: patch} }),
	TypeUpdateUserSettings: patchDecoder(func(patch json.RawMessage) Action { return UpdateUserSettings{Patch: patch} }),
	TypeUpdatePersonalInfo: patchDecoder(func(patch json.RawMessage) Action { return UpdatePersonalInfo{Patch: patch} }),
	TypeUpdateFitnessGoals: patchDecoder(func(patch json.RawMessage) Action { return UpdateFitnessGoals{Patch: patch} }),
	TypeUpdatePreferences:  patchDecoder(func(patch json.RawMessage) Action { return UpdatePreferences{Patch: patch} }),
	TypeAddMilestone: valueDecoder(func(milestone models.Milestone) Action {
		return AddMilestone{Milestone: milestone}
	}),
	TypeCompleteMilestone: idDecoder(func(id string) Action { return CompleteMilestone{ID: id} }),

	TypeAddWorkoutPlan: valueDecoder(func(plan models.SavedWorkoutPlan) Action {
		return AddWorkoutPlan{WorkoutPlan: plan.WorkoutPlan, Preferences: plan.Preferences}
	}),
	TypeSetCurrentWorkoutPlan: valueDecoder(func(plan *models.SavedWorkoutPlan) Action {
		return SetCurrentWorkoutPlan{Plan: plan}
	}),
	TypeUpdateWorkoutPlan: idPatchDecoder(func(id string, patch json.RawMessage) Action {
		return UpdateWorkoutPlan{ID: id, Patch: patch}
	}),
	TypeDeleteWorkoutPlan: idDecoder(func(id string) Action { return DeleteWorkoutPlan{ID: id} }),
	TypeLogCompletedWorkout: valueDecoder(func(workout models.CompletedWorkout) Action {
		return LogCompletedWorkout{Workout: workout}
	}),
	TypeUpdateWorkoutLog: idPatchDecoder(func(id string, patch json.RawMessage) Action {
		return UpdateWorkoutLog{ID: id, Patch: patch}
	}),
	TypeDeleteWorkoutLog: idDecoder(func(id string) Action { return DeleteWorkoutLog{ID: id} }),

	TypeAddNutritionPlan: valueDecoder(func(plan models.SavedNutritionPlan) Action {
		return AddNutritionPlan{NutritionPlan: plan.NutritionPlan, Preferences: plan.Preferences}
	}),
	TypeSetCurrentNutritionPlan: valueDecoder(func(plan *models.SavedNutritionPlan) Action {
		return SetCurrentNutritionPlan{Plan: plan}
	}),
	TypeUpdateNutritionPlan: idPatchDecoder(func(id string, patch json.RawMessage) Action {
		return UpdateNutritionPlan{ID: id, Patch: patch}
	}),
	TypeDeleteNutritionPlan: idDecoder(func(id string) Action { return DeleteNutritionPlan{ID: id} }),
	TypeLogMeal:             valueDecoder(func(meal models.MealLog) Action { return LogMeal{Meal: meal} }),
	TypeClearMealLogs: func(json.RawMessage) (Action, error) {
		return ClearMealLogs{}, nil
	},
	TypeSaveRecipe: valueDecoder(func(saved models.SavedRecipe) Action {
		return SaveRecipe{Recipe: saved.Recipe}
	}),
	TypeDeleteRecipe: idDecoder(func(id string) Action { return DeleteRecipe{ID: id} }),

	TypeToggleFavoriteExercise: idDecoder(func(id string) Action { return ToggleFavoriteExercise{ExerciseID: id} }),
	TypeRecordExerciseCompletion: valueDecoder(func(completion models.ExerciseCompletion) Action {
		return RecordExerciseCompletion{Completion: completion}
	}),

	TypeAddBodyMeasurement: valueDecoder(func(measurement models.BodyMeasurement) Action {
		return AddBodyMeasurement{Measurement: measurement}
	}),
	TypeUpdateMeasurement: valueDecoder(func(measurement models.BodyMeasurement) Action {
		return UpdateMeasurement{Measurement: measurement}
	}),
	TypeDeleteMeasurement: idDecoder(func(id string) Action { return DeleteMeasurement{ID: id} }),
	TypeAddProgressPhoto: valueDecoder(func(photo models.ProgressPhoto) Action {
		return AddProgressPhoto{Photo: photo}
	}),
	TypeRemoveProgressPhoto: idDecoder(func(id string) Action { return RemoveProgressPhoto{ID: id} }),
	TypeSetGoals:            patchDecoder(func(patch json.RawMessage) Action { return SetGoals{Patch: patch} }),
	TypeAddAchievement: valueDecoder(func(achievement models.Achievement) Action {
		return AddAchievement{Achievement: achievement}
	}),
}

// DecodeAction builds an action from its type and JSON payload. Payloads use
// the stored shapes: a bare id (or {"id": ...}) for removals, the entity for
// additions and a partial object for updates.
func DecodeAction(actionType string, payload []byte) (Action, error) {
	decoder, ok := actionDecoders[NormalizeActionType(actionType)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, actionType)
	}
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		trimmed = []byte("null")
	}
	action, err := decoder(json.RawMessage(trimmed))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidAction, actionType, err)
	}
	return action, nil
}

// NormalizeActionType accepts "workout.addWorkoutPlan" as well as the
// canonical "workout/addWorkoutPlan".
func NormalizeActionType(actionType string) string {
	trimmed := strings.TrimSpace(actionType)
	if strings.Contains(trimmed, "/") {
		return trimmed
	}
	return strings.Replace(trimmed, ".", "/", 1)
}

func ActionTypes() []string {
	types := make([]string, 0, len(actionDecoders))
	for actionType := range actionDecoders {
		types = append(types, actionType)
	}
	sort.Strings(types)
	return types
}

func valueDecoder[T any](build func(T) Action) actionDecoder {
	return func(payload json.RawMessage) (Action, error) {
		var value T
		if err := json.Unmarshal(payload, &value); err != nil {
			return nil, err
		}
		return build(value), nil
	}
}

func patchDecoder(build func(json.RawMessage) Action) actionDecoder {
	return func(payload json.RawMessage) (Action, error) {
		if _, err := patchFields(payload); err != nil {
			return nil, err
		}
		return build(payload), nil
	}
}

func idDecoder(build func(string) Action) actionDecoder {
	return func(payload json.RawMessage) (Action, error) {
		id, err := decodeID(payload)
		if err != nil {
			return nil, err
		}
		return build(id), nil
	}
}

// idPatchDecoder reads {"id": ..., ...updates}; the id stays in the patch
// and is pinned again by the reducer.
func idPatchDecoder(build func(string, json.RawMessage) Action) actionDecoder {
	return func(payload json.RawMessage) (Action, error) {
		id, err := decodeID(payload)
		if err != nil {
			return nil, err
		}
		return build(id, payload), nil
	}
}

func decodeID(payload json.RawMessage) (string, error) {
	var id string
	if err := json.Unmarshal(payload, &id); err == nil {
		return id, nil
	}
	var wrapped struct {
		ID         string `json:"id"`
		ExerciseID string `json:"exerciseId"`
	}
	if err := json.Unmarshal(payload, &wrapped); err != nil {
		return "", err
	}
	if wrapped.ID != "" {
		return wrapped.ID, nil
	}
	return wrapped.ExerciseID, nil
}
