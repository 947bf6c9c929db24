package store

import (
	"strings"

	"github.com/terraincognita07/fitnutri/internal/models"
)

func reduceNutrition(state NutritionState, action Action) NutritionState {
	switch typed := action.(type) {
	case AddNutritionPlan:
		state.NutritionPlans = appendCopy(state.NutritionPlans, models.SavedNutritionPlan{
			ID:            typed.ID,
			CreatedAt:     typed.CreatedAt,
			NutritionPlan: typed.NutritionPlan,
			Preferences:   typed.Preferences,
		})
	case SetCurrentNutritionPlan:
		state.CurrentPlan = typed.Plan
	case UpdateNutritionPlan:
		index := indexOf(state.NutritionPlans, func(plan models.SavedNutritionPlan) bool { return plan.ID == typed.ID })
		if index < 0 {
			return state
		}
		merged, err := mergeShallow(state.NutritionPlans[index], typed.Patch)
		if err != nil {
			return state
		}
		merged.ID = typed.ID
		state.NutritionPlans = replaceCopy(state.NutritionPlans, index, merged)
		if state.CurrentPlan != nil && state.CurrentPlan.ID == typed.ID {
			if current, err := mergeShallow(*state.CurrentPlan, typed.Patch); err == nil {
				current.ID = typed.ID
				state.CurrentPlan = &current
			}
		}
	case DeleteNutritionPlan:
		state.NutritionPlans = filterCopy(state.NutritionPlans, func(plan models.SavedNutritionPlan) bool { return plan.ID != typed.ID })
		if state.CurrentPlan != nil && state.CurrentPlan.ID == typed.ID {
			state.CurrentPlan = nil
		}
	case LogMeal:
		meal := typed.Meal
		if meal.PlanID == "" && state.CurrentPlan != nil {
			meal.PlanID = state.CurrentPlan.ID
		}
		state.MealLogs = appendCopy(state.MealLogs, meal)
	case ClearMealLogs:
		state.MealLogs = []models.MealLog{}
	case SaveRecipe:
		name := strings.ToLower(strings.TrimSpace(typed.Recipe.Name))
		exists := indexOf(state.SavedRecipes, func(saved models.SavedRecipe) bool {
			return strings.ToLower(strings.TrimSpace(saved.Recipe.Name)) == name
		}) >= 0
		if exists {
			return state
		}
		state.SavedRecipes = appendCopy(state.SavedRecipes, models.SavedRecipe{
			ID:      typed.ID,
			SavedAt: typed.SavedAt,
			Recipe:  typed.Recipe,
		})
	case DeleteRecipe:
		state.SavedRecipes = filterCopy(state.SavedRecipes, func(saved models.SavedRecipe) bool { return saved.ID != typed.ID })
	}
	return state
}
