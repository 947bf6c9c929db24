package api

import (
	"net/http"
	"testing"

	"github.com/terraincognita07/fitnutri/internal/models"
)

const manualWorkoutPlan = `{"workoutPlan":{"name":"Home Circuit","goal":"endurance","level":"beginner","frequency":"2","duration":"30",
"schedule":{"tuesday":{"focus":"Circuit","exercises":[{"name":"Burpee","sets":3,"reps":"12","rest":60}]}}},
"preferences":{"goal":"endurance","daysPerWeek":"2","timePerSession":"30","level":"beginner"}}`

func TestSaveAndDeleteWorkoutPlan(t *testing.T) {
	testApp := newTestAPI(t)

	response := testApp.do(t, http.MethodPost, "/api/plans/workout", manualWorkoutPlan)
	assertStatus(t, response, http.StatusCreated)
	var saved models.SavedWorkoutPlan
	decodeResponse(t, response, &saved)
	if saved.ID == "" || saved.WorkoutPlan.Name != "Home Circuit" || saved.Preferences.DaysPerWeek != "2" {
		t.Fatalf("unexpected saved plan %+v", saved)
	}

	assertStatus(t, testApp.do(t, http.MethodPost, "/api/plans/workout/"+saved.ID+"/view", ""), http.StatusOK)
	if current := testApp.store.State().Workout.CurrentPlan; current == nil || current.ID != saved.ID {
		t.Fatalf("expected plan to be current, got %+v", current)
	}

	assertStatus(t, testApp.do(t, http.MethodDelete, "/api/plans/workout/"+saved.ID, ""), http.StatusNoContent)
	workout := testApp.store.State().Workout
	if len(workout.WorkoutPlans) != 0 || workout.CurrentPlan != nil {
		t.Fatalf("expected plan and current plan removed, got %+v", workout)
	}

	assertStatus(t, testApp.do(t, http.MethodDelete, "/api/plans/workout/"+saved.ID, ""), http.StatusNoContent)

	response = testApp.do(t, http.MethodPost, "/api/plans/workout/"+saved.ID+"/view", "")
	assertStatus(t, response, http.StatusNotFound)
	if body := readAPIError(t, response); body.Code != "error.plan_not_found" {
		t.Fatalf("expected error.plan_not_found, got %+v", body)
	}
}

func TestSaveNutritionPlanRejectsWrongDocument(t *testing.T) {
	testApp := newTestAPI(t)

	response := testApp.do(t, http.MethodPost, "/api/plans/nutrition", manualWorkoutPlan)
	assertStatus(t, response, http.StatusUnprocessableEntity)
	if len(testApp.store.State().Nutrition.NutritionPlans) != 0 {
		t.Fatal("expected nothing saved")
	}

	response = testApp.do(t, http.MethodPost, "/api/plans/nutrition", nutritionReply)
	assertStatus(t, response, http.StatusCreated)
	if current := testApp.store.State().Nutrition.CurrentPlan; current == nil || current.NutritionPlan.Name != "Lean Bulk" {
		t.Fatalf("expected nutrition plan to be current, got %+v", current)
	}
}

func TestSaveRecipeDeduplicatesByName(t *testing.T) {
	testApp := newTestAPI(t)

	first := testApp.do(t, http.MethodPost, "/api/recipes", recipeReply)
	assertStatus(t, first, http.StatusCreated)
	var saved models.SavedRecipe
	decodeResponse(t, first, &saved)

	second := testApp.do(t, http.MethodPost, "/api/recipes", recipeReply)
	assertStatus(t, second, http.StatusCreated)
	var again models.SavedRecipe
	decodeResponse(t, second, &again)
	if again.ID != saved.ID {
		t.Fatalf("expected existing recipe %q, got %q", saved.ID, again.ID)
	}
	if recipes := testApp.store.State().Nutrition.SavedRecipes; len(recipes) != 1 {
		t.Fatalf("expected one recipe, got %d", len(recipes))
	}

	assertStatus(t, testApp.do(t, http.MethodDelete, "/api/recipes/"+saved.ID, ""), http.StatusNoContent)
	if recipes := testApp.store.State().Nutrition.SavedRecipes; len(recipes) != 0 {
		t.Fatalf("expected recipe removed, got %d", len(recipes))
	}
}

func TestPlanRoutesRejectUnknownKind(t *testing.T) {
	testApp := newTestAPI(t)

	response := testApp.do(t, http.MethodDelete, "/api/plans/cardio/plan-1", "")
	assertStatus(t, response, http.StatusNotFound)
	if body := readAPIError(t, response); body.Code != "error.unsupported_kind" {
		t.Fatalf("expected error.unsupported_kind, got %+v", body)
	}

	response = testApp.do(t, http.MethodPost, "/api/plans/recipe/plan-1/view", "")
	assertStatus(t, response, http.StatusNotFound)
}
