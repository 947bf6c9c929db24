package models

import "time"

type RecipeDocument struct {
	Recipe RecipeBody `json:"recipe"`
}

type RecipeBody struct {
	Name         string             `json:"name"`
	Calories     FlexFloat          `json:"calories"`
	Macros       Macros             `json:"macros"`
	PrepTime     FlexString         `json:"prepTime"`
	CookTime     FlexString         `json:"cookTime"`
	Servings     FlexInt            `json:"servings"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions []FlexString       `json:"instructions"`
	Tips         FlexString         `json:"tips"`
	DietaryInfo  *DietaryInfo       `json:"dietaryInfo,omitempty"`
}

type RecipeIngredient struct {
	Name   string     `json:"name"`
	Amount FlexString `json:"amount"`
}

type DietaryInfo struct {
	GlutenFree bool `json:"glutenFree"`
	DairyFree  bool `json:"dairyFree"`
	Vegetarian bool `json:"vegetarian"`
	Vegan      bool `json:"vegan"`
}

type RecipePreferences struct {
	DietType     string `json:"dietType"`
	Restrictions string `json:"restrictions"`
}

type SavedRecipe struct {
	ID      string     `json:"id"`
	SavedAt time.Time  `json:"savedAt"`
	Recipe  RecipeBody `json:"recipe"`
}
