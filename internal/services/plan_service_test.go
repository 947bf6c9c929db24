package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/fitnutri/internal/ai"
	"github.com/terraincognita07/fitnutri/internal/models"
	"github.com/terraincognita07/fitnutri/internal/store"
)

func TestSaveWorkoutPlanBecomesCurrent(t *testing.T) {
	domain := store.New(store.Options{})
	service := NewPlanService(domain)

	saved, err := service.SaveWorkoutPlan(
		models.WorkoutPlanDocument{WorkoutPlan: models.WorkoutPlanBody{Name: "Full Body"}},
		models.DefaultWorkoutPreferences(),
	)
	if err != nil {
		t.Fatalf("SaveWorkoutPlan() unexpected error: %v", err)
	}
	if saved.ID == "" || saved.CreatedAt.IsZero() {
		t.Fatalf("expected stamped plan, got %+v", saved)
	}

	state := domain.State().Workout
	if len(state.WorkoutPlans) != 1 || state.WorkoutPlans[0].ID != saved.ID {
		t.Fatalf("expected plan in list, got %+v", state.WorkoutPlans)
	}
	if state.CurrentPlan == nil || state.CurrentPlan.ID != saved.ID {
		t.Fatalf("expected saved plan to be current, got %+v", state.CurrentPlan)
	}
}

func TestSaveNutritionPlanBecomesCurrent(t *testing.T) {
	domain := store.New(store.Options{})
	service := NewPlanService(domain)

	first, err := service.SaveNutritionPlan(models.NutritionPlanDocument{NutritionPlan: models.NutritionPlanBody{Name: "Cut"}}, models.NutritionPreferences{})
	if err != nil {
		t.Fatalf("SaveNutritionPlan() unexpected error: %v", err)
	}
	second, err := service.SaveNutritionPlan(models.NutritionPlanDocument{NutritionPlan: models.NutritionPlanBody{Name: "Bulk"}}, models.NutritionPreferences{})
	if err != nil {
		t.Fatalf("SaveNutritionPlan() unexpected error: %v", err)
	}

	state := domain.State().Nutrition
	if len(state.NutritionPlans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(state.NutritionPlans))
	}
	if state.CurrentPlan == nil || state.CurrentPlan.ID != second.ID {
		t.Fatalf("expected latest plan to be current, got %+v", state.CurrentPlan)
	}

	if err := service.ViewPlan(ai.KindNutrition, first.ID); err != nil {
		t.Fatalf("ViewPlan() unexpected error: %v", err)
	}
	if current := domain.State().Nutrition.CurrentPlan; current == nil || current.ID != first.ID {
		t.Fatalf("expected viewed plan to be current, got %+v", current)
	}
}

func TestViewPlanUnknownID(t *testing.T) {
	service := NewPlanService(store.New(store.Options{}))

	if err := service.ViewPlan(ai.KindWorkout, "missing"); !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
	if err := service.ViewPlan(ai.KindRecipe, "missing"); !errors.Is(err, ai.ErrUnsupportedKind) {
		t.Fatalf("expected ErrUnsupportedKind, got %v", err)
	}
}

func TestDeletePlanClearsCurrent(t *testing.T) {
	domain := store.New(store.Options{})
	service := NewPlanService(domain)

	saved, err := service.SaveWorkoutPlan(models.WorkoutPlanDocument{WorkoutPlan: models.WorkoutPlanBody{Name: "A"}}, models.WorkoutPreferences{})
	if err != nil {
		t.Fatalf("SaveWorkoutPlan() unexpected error: %v", err)
	}
	if err := service.DeletePlan(ai.KindWorkout, saved.ID); err != nil {
		t.Fatalf("DeletePlan() unexpected error: %v", err)
	}

	state := domain.State().Workout
	if len(state.WorkoutPlans) != 0 || state.CurrentPlan != nil {
		t.Fatalf("expected plan and current selection removed, got %+v", state)
	}
}

func TestSaveRecipeReturnsExistingDuplicate(t *testing.T) {
	domain := store.New(store.Options{})
	service := NewPlanService(domain)

	first, err := service.SaveRecipe(models.RecipeDocument{Recipe: models.RecipeBody{Name: "Oat Bowl"}})
	if err != nil {
		t.Fatalf("SaveRecipe() unexpected error: %v", err)
	}
	second, err := service.SaveRecipe(models.RecipeDocument{Recipe: models.RecipeBody{Name: "oat bowl"}})
	if err != nil {
		t.Fatalf("SaveRecipe() unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected duplicate to resolve to %q, got %q", first.ID, second.ID)
	}
	if recipes := domain.State().Nutrition.SavedRecipes; len(recipes) != 1 {
		t.Fatalf("expected one saved recipe, got %d", len(recipes))
	}

	if err := service.DeletePlan(ai.KindRecipe, first.ID); err != nil {
		t.Fatalf("DeletePlan() unexpected error: %v", err)
	}
	if _, err := service.SaveRecipe(models.RecipeDocument{}); !errors.Is(err, store.ErrInvalidAction) {
		t.Fatalf("expected nameless recipe to be rejected, got %v", err)
	}
}
