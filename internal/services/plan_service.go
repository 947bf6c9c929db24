package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/fitnutri/internal/ai"
	"github.com/terraincognita07/fitnutri/internal/models"
	"github.com/terraincognita07/fitnutri/internal/store"
)

var ErrPlanNotFound = errors.New("plan not found")

// StateStore is the part of store.Store the services depend on.
type StateStore interface {
	Dispatch(action store.Action) error
	State() store.State
	NewID() string
}

type PlanService struct {
	store StateStore
}

func NewPlanService(stateStore StateStore) *PlanService {
	return &PlanService{store: stateStore}
}

// SaveWorkoutPlan adds a generated plan and makes it the current one.
func (service *PlanService) SaveWorkoutPlan(document models.WorkoutPlanDocument, prefs models.WorkoutPreferences) (models.SavedWorkoutPlan, error) {
	id := service.store.NewID()
	if err := service.store.Dispatch(store.AddWorkoutPlan{
		ID:          id,
		WorkoutPlan: document.WorkoutPlan,
		Preferences: prefs,
	}); err != nil {
		return models.SavedWorkoutPlan{}, fmt.Errorf("save workout plan: %w", err)
	}
	plan, ok := findWorkoutPlan(service.store.State().Workout, id)
	if !ok {
		return models.SavedWorkoutPlan{}, fmt.Errorf("save workout plan %s: %w", id, ErrPlanNotFound)
	}
	if err := service.store.Dispatch(store.SetCurrentWorkoutPlan{Plan: &plan}); err != nil {
		return models.SavedWorkoutPlan{}, fmt.Errorf("set current workout plan: %w", err)
	}
	return plan, nil
}

func (service *PlanService) SaveNutritionPlan(document models.NutritionPlanDocument, prefs models.NutritionPreferences) (models.SavedNutritionPlan, error) {
	id := service.store.NewID()
	if err := service.store.Dispatch(store.AddNutritionPlan{
		ID:            id,
		NutritionPlan: document.NutritionPlan,
		Preferences:   prefs,
	}); err != nil {
		return models.SavedNutritionPlan{}, fmt.Errorf("save nutrition plan: %w", err)
	}
	plan, ok := findNutritionPlan(service.store.State().Nutrition, id)
	if !ok {
		return models.SavedNutritionPlan{}, fmt.Errorf("save nutrition plan %s: %w", id, ErrPlanNotFound)
	}
	if err := service.store.Dispatch(store.SetCurrentNutritionPlan{Plan: &plan}); err != nil {
		return models.SavedNutritionPlan{}, fmt.Errorf("set current nutrition plan: %w", err)
	}
	return plan, nil
}

// SaveRecipe stores a generated recipe. A recipe whose name is already saved
// is returned as-is instead of being added twice.
func (service *PlanService) SaveRecipe(document models.RecipeDocument) (models.SavedRecipe, error) {
	id := service.store.NewID()
	if err := service.store.Dispatch(store.SaveRecipe{ID: id, Recipe: document.Recipe}); err != nil {
		return models.SavedRecipe{}, fmt.Errorf("save recipe: %w", err)
	}
	for _, saved := range service.store.State().Nutrition.SavedRecipes {
		if saved.ID == id || sameRecipeName(saved.Recipe.Name, document.Recipe.Name) {
			return saved, nil
		}
	}
	return models.SavedRecipe{}, fmt.Errorf("save recipe %s: %w", id, ErrPlanNotFound)
}

// ViewPlan makes a stored plan the current one.
func (service *PlanService) ViewPlan(kind ai.PlanKind, id string) error {
	state := service.store.State()
	switch kind {
	case ai.KindWorkout:
		plan, ok := findWorkoutPlan(state.Workout, id)
		if !ok {
			return fmt.Errorf("view workout plan %s: %w", id, ErrPlanNotFound)
		}
		return service.store.Dispatch(store.SetCurrentWorkoutPlan{Plan: &plan})
	case ai.KindNutrition:
		plan, ok := findNutritionPlan(state.Nutrition, id)
		if !ok {
			return fmt.Errorf("view nutrition plan %s: %w", id, ErrPlanNotFound)
		}
		return service.store.Dispatch(store.SetCurrentNutritionPlan{Plan: &plan})
	default:
		return fmt.Errorf("view %s: %w", kind, ai.ErrUnsupportedKind)
	}
}

// DeletePlan removes a plan or saved recipe. Deleting the current plan also
// clears the current selection.
func (service *PlanService) DeletePlan(kind ai.PlanKind, id string) error {
	var action store.Action
	switch kind {
	case ai.KindWorkout:
		action = store.DeleteWorkoutPlan{ID: id}
	case ai.KindNutrition:
		action = store.DeleteNutritionPlan{ID: id}
	case ai.KindRecipe:
		action = store.DeleteRecipe{ID: id}
	default:
		return fmt.Errorf("delete %s: %w", kind, ai.ErrUnsupportedKind)
	}
	return service.store.Dispatch(action)
}

func findWorkoutPlan(state store.WorkoutState, id string) (models.SavedWorkoutPlan, bool) {
	for _, plan := range state.WorkoutPlans {
		if plan.ID == id {
			return plan, true
		}
	}
	return models.SavedWorkoutPlan{}, false
}

func findNutritionPlan(state store.NutritionState, id string) (models.SavedNutritionPlan, bool) {
	for _, plan := range state.NutritionPlans {
		if plan.ID == id {
			return plan, true
		}
	}
	return models.SavedNutritionPlan{}, false
}

func sameRecipeName(left string, right string) bool {
	return strings.EqualFold(strings.TrimSpace(left), strings.TrimSpace(right))
}
