package models

import "time"

type NutritionPlanDocument struct {
	NutritionPlan NutritionPlanBody `json:"nutritionPlan"`
}

type NutritionPlanBody struct {
	Name                      string     `json:"name"`
	DailyCalories             FlexInt    `json:"dailyCalories"`
	Macros                    Macros     `json:"macros"`
	Meals                     []Meal     `json:"meals"`
	WaterIntake               FlexString `json:"waterIntake,omitempty"`
	SupplementRecommendations FlexString `json:"supplementRecommendations,omitempty"`
	Notes                     FlexString `json:"notes,omitempty"`
}

type Macros struct {
	Protein FlexFloat `json:"protein"`
	Carbs   FlexFloat `json:"carbs"`
	Fats    FlexFloat `json:"fats"`
}

type Meal struct {
	Name     string     `json:"name"`
	Time     FlexString `json:"time"`
	Calories FlexFloat  `json:"calories"`
	Protein  FlexFloat  `json:"protein"`
	Carbs    FlexFloat  `json:"carbs"`
	Fats     FlexFloat  `json:"fats"`
	Items    []FoodItem `json:"items"`
}

type FoodItem struct {
	Food     string     `json:"food"`
	Amount   FlexString `json:"amount"`
	Calories FlexFloat  `json:"calories"`
	Protein  FlexFloat  `json:"protein"`
	Carbs    FlexFloat  `json:"carbs"`
	Fats     FlexFloat  `json:"fats"`
	Recipe   FlexString `json:"recipe,omitempty"`
}

type NutritionPreferences struct {
	CalorieTarget       string   `json:"calorieTarget"`
	MealsPerDay         string   `json:"mealsPerDay"`
	DietaryPreferences  []string `json:"dietaryPreferences"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	Allergies           string   `json:"allergies"`
}

type SavedNutritionPlan struct {
	ID            string               `json:"id"`
	CreatedAt     time.Time            `json:"createdAt"`
	NutritionPlan NutritionPlanBody    `json:"nutritionPlan"`
	Preferences   NutritionPreferences `json:"preferences"`
}

type MealLog struct {
	ID       string     `json:"id"`
	Date     time.Time  `json:"date"`
	PlanID   string     `json:"planId,omitempty"`
	MealName string     `json:"mealName"`
	Items    []FoodItem `json:"items"`
	Calories FlexFloat  `json:"calories"`
	Notes    string     `json:"notes,omitempty"`
}

// PlannedCalories sums meal calories; the AI is asked to match DailyCalories
// but nothing enforces it.
func (body NutritionPlanBody) PlannedCalories() float64 {
	total := 0.0
	for _, meal := range body.Meals {
		total += float64(meal.Calories)
	}
	return total
}
