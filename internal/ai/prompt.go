package ai

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"text/template"

	"github.com/terraincognita07/fitnutri/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptCatalogYAML []byte

type promptCatalog struct {
	Structure string                   `yaml:"structure"`
	Closing   string                   `yaml:"closing"`
	Kinds     map[string]promptSection `yaml:"kinds"`
}

type promptSection struct {
	Role    string `yaml:"role"`
	Details string `yaml:"details"`
	Tasks   string `yaml:"tasks"`
}

// RecipeRequest is the preference payload of a recipe prompt.
type RecipeRequest struct {
	Ingredients []string                 `json:"ingredients"`
	Preferences models.RecipePreferences `json:"preferences"`
}

type promptData struct {
	Profile     models.UserProfile
	HeightUnit  string
	WeightUnit  string
	Workout     models.WorkoutPreferences
	Nutrition   models.NutritionPreferences
	Recipe      models.RecipePreferences
	Ingredients []string
}

// PromptBuilder renders one prompt per plan kind. It holds no mutable state
// and the same inputs always produce the same text.
type PromptBuilder struct {
	structure string
	closing   string
	roles     map[PlanKind]string
	templates map[PlanKind]*template.Template
}

func NewPromptBuilder() (*PromptBuilder, error) {
	var catalog promptCatalog
	if err := yaml.Unmarshal(promptCatalogYAML, &catalog); err != nil {
		return nil, fmt.Errorf("decode prompt catalog: %w", err)
	}

	builder := &PromptBuilder{
		structure: strings.TrimSpace(catalog.Structure),
		closing:   strings.TrimSpace(catalog.Closing),
		roles:     make(map[PlanKind]string, len(catalog.Kinds)),
		templates: make(map[PlanKind]*template.Template, len(catalog.Kinds)),
	}
	funcs := template.FuncMap{
		"join": func(values []string) string { return strings.Join(values, ", ") },
	}
	for _, kind := range []PlanKind{KindWorkout, KindNutrition, KindRecipe} {
		section, ok := catalog.Kinds[string(kind)]
		if !ok {
			return nil, fmt.Errorf("prompt catalog has no %s section", kind)
		}
		root := template.New(string(kind)).Funcs(funcs).Option("missingkey=error")
		if _, err := root.New("details").Parse(section.Details); err != nil {
			return nil, fmt.Errorf("parse %s details template: %w", kind, err)
		}
		if _, err := root.New("tasks").Parse(section.Tasks); err != nil {
			return nil, fmt.Errorf("parse %s tasks template: %w", kind, err)
		}
		builder.roles[kind] = strings.TrimSpace(section.Role)
		builder.templates[kind] = root
	}
	return builder, nil
}

// Build dispatches on kind. prefs must be models.WorkoutPreferences,
// models.NutritionPreferences or RecipeRequest to match.
func (builder *PromptBuilder) Build(kind PlanKind, profile models.UserProfile, prefs any) (string, error) {
	switch typed := prefs.(type) {
	case models.WorkoutPreferences:
		if kind == KindWorkout {
			return builder.WorkoutPrompt(profile, typed)
		}
	case models.NutritionPreferences:
		if kind == KindNutrition {
			return builder.NutritionPrompt(profile, typed)
		}
	case RecipeRequest:
		if kind == KindRecipe {
			return builder.RecipePrompt(typed.Ingredients, typed.Preferences)
		}
	}
	return "", fmt.Errorf("%w: %s prompt with %T", ErrUnsupportedKind, kind, prefs)
}

func (builder *PromptBuilder) WorkoutPrompt(profile models.UserProfile, prefs models.WorkoutPreferences) (string, error) {
	data := newPromptData(profile)
	data.Workout = prefs
	return builder.render(KindWorkout, data, workoutTemplate(prefs))
}

func (builder *PromptBuilder) NutritionPrompt(profile models.UserProfile, prefs models.NutritionPreferences) (string, error) {
	data := newPromptData(profile)
	data.Nutrition = prefs
	return builder.render(KindNutrition, data, nutritionTemplate(prefs))
}

func (builder *PromptBuilder) RecipePrompt(ingredients []string, prefs models.RecipePreferences) (string, error) {
	data := newPromptData(models.UserProfile{})
	data.Recipe = prefs
	data.Ingredients = ingredients
	return builder.render(KindRecipe, data, recipeTemplate())
}

func (builder *PromptBuilder) render(kind PlanKind, data promptData, example any) (string, error) {
	templates, ok := builder.templates[kind]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}

	exampleJSON, err := json.MarshalIndent(example, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s template: %w", kind, err)
	}

	var details bytes.Buffer
	if err := templates.ExecuteTemplate(&details, "details", data); err != nil {
		return "", fmt.Errorf("render %s details: %w", kind, err)
	}
	var tasks bytes.Buffer
	if err := templates.ExecuteTemplate(&tasks, "tasks", data); err != nil {
		return "", fmt.Errorf("render %s tasks: %w", kind, err)
	}

	var prompt strings.Builder
	prompt.WriteString(builder.roles[kind])
	prompt.WriteString("\n\n")
	prompt.WriteString(details.String())
	prompt.WriteString("\n\n")
	prompt.WriteString(builder.structure)
	prompt.WriteString("\n")
	prompt.Write(exampleJSON)
	prompt.WriteString("\n\n")
	prompt.WriteString(tasks.String())
	prompt.WriteString("\n")
	prompt.WriteString(builder.closing)
	return prompt.String(), nil
}

func newPromptData(profile models.UserProfile) promptData {
	data := promptData{Profile: profile, HeightUnit: "cm", WeightUnit: "kg"}
	if profile.Settings.AppSettings.MeasurementSystem == models.MeasurementSystemImperial {
		data.HeightUnit = "in"
		data.WeightUnit = "lb"
	}
	return data
}

func workoutTemplate(prefs models.WorkoutPreferences) models.WorkoutPlanDocument {
	return models.WorkoutPlanDocument{
		WorkoutPlan: models.WorkoutPlanBody{
			Name:      "Name of workout plan",
			Goal:      prefs.Goal,
			Level:     prefs.Level,
			Frequency: models.FlexString(prefs.DaysPerWeek + " days per week"),
			Duration:  models.FlexString(prefs.TimePerSession + " minutes per session"),
			Schedule: map[string]models.DaySchedule{
				"monday": {
					Focus: "Target area",
					Exercises: []models.Exercise{{
						Name:         "Exercise name",
						MuscleGroup:  "Primary muscle group",
						Sets:         3,
						Reps:         "8-12",
						Rest:         60,
						Instructions: "Brief instructions",
					}},
				},
			},
			Warmup:   "Warmup instructions",
			Cooldown: "Cooldown instructions",
			Notes:    "Additional notes",
		},
	}
}

// nutritionTemplate splits the calorie target 30/40/30 across protein, carbs
// and fats at 4, 4 and 9 kcal per gram.
func nutritionTemplate(prefs models.NutritionPreferences) models.NutritionPlanDocument {
	calories := models.NumberFromText(prefs.CalorieTarget)
	return models.NutritionPlanDocument{
		NutritionPlan: models.NutritionPlanBody{
			Name:          "Name of the meal plan",
			DailyCalories: models.FlexInt(math.Trunc(calories)),
			Macros: models.Macros{
				Protein: models.FlexFloat(math.Round(calories * 0.3 / 4)),
				Carbs:   models.FlexFloat(math.Round(calories * 0.4 / 4)),
				Fats:    models.FlexFloat(math.Round(calories * 0.3 / 9)),
			},
			Meals: []models.Meal{{
				Name: "Meal name (e.g. Breakfast)",
				Time: "Time (e.g. 8:00 AM)",
				Items: []models.FoodItem{{
					Food:   "Food name",
					Amount: "Serving size",
					Recipe: "Preparation instructions (optional)",
				}},
			}},
		},
	}
}

func recipeTemplate() models.RecipeDocument {
	return models.RecipeDocument{
		Recipe: models.RecipeBody{
			Name:     "Recipe name",
			PrepTime: "Preparation time",
			CookTime: "Cooking time",
			Ingredients: []models.RecipeIngredient{{
				Name:   "Ingredient name",
				Amount: "Amount needed",
			}},
			Instructions: []models.FlexString{
				"Step 1: Instruction",
				"Step 2: Instruction",
			},
			Tips: "Additional tips or variations",
		},
	}
}
