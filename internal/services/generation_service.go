package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/terraincognita07/fitnutri/internal/ai"
	"github.com/terraincognita07/fitnutri/internal/models"
)

var ErrInvalidPreferences = errors.New("invalid generation preferences")

// PlanGenerator returns the raw model output for a plan request. The
// provider name may be empty or unknown, in which case the active provider
// answers.
type PlanGenerator interface {
	GenerateWorkoutPlan(ctx context.Context, provider string, profile models.UserProfile, prefs models.WorkoutPreferences) (string, error)
	GenerateNutritionPlan(ctx context.Context, provider string, profile models.UserProfile, prefs models.NutritionPreferences) (string, error)
	GenerateRecipe(ctx context.Context, provider string, ingredients []string, prefs models.RecipePreferences) (string, error)
}

type GenerationStatus struct {
	Loading   bool   `json:"loading"`
	LastError string `json:"lastError,omitempty"`
}

type generationState struct {
	inFlight  int
	lastError string
}

type GenerationService struct {
	generator PlanGenerator
	parser    *ai.Parser
	logger    hclog.Logger

	mu     sync.Mutex
	states map[ai.PlanKind]*generationState
}

func NewGenerationService(generator PlanGenerator, parser *ai.Parser, logger hclog.Logger) *GenerationService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if parser == nil {
		parser = ai.NewParser(logger)
	}
	return &GenerationService{
		generator: generator,
		parser:    parser,
		logger:    logger.Named("generation"),
		states: map[ai.PlanKind]*generationState{
			ai.KindWorkout:   {},
			ai.KindNutrition: {},
			ai.KindRecipe:    {},
		},
	}
}

// GenerateWorkoutPlan asks the provider chosen in the profile settings for a
// plan and parses it. Nothing is saved.
func (service *GenerationService) GenerateWorkoutPlan(ctx context.Context, profile models.UserProfile, prefs models.WorkoutPreferences) (document models.WorkoutPlanDocument, err error) {
	if err := validateWorkoutPreferences(prefs); err != nil {
		return models.WorkoutPlanDocument{}, err
	}
	done := service.begin(ai.KindWorkout)
	defer func() { done(err) }()

	raw, err := service.generator.GenerateWorkoutPlan(ctx, providerOf(profile), profile, prefs)
	if err != nil {
		return models.WorkoutPlanDocument{}, err
	}
	return service.parser.ParseWorkoutPlan(raw)
}

func (service *GenerationService) GenerateNutritionPlan(ctx context.Context, profile models.UserProfile, prefs models.NutritionPreferences) (document models.NutritionPlanDocument, err error) {
	if err := validateNutritionPreferences(prefs); err != nil {
		return models.NutritionPlanDocument{}, err
	}
	done := service.begin(ai.KindNutrition)
	defer func() { done(err) }()

	raw, err := service.generator.GenerateNutritionPlan(ctx, providerOf(profile), profile, prefs)
	if err != nil {
		return models.NutritionPlanDocument{}, err
	}
	return service.parser.ParseNutritionPlan(raw)
}

// GenerateRecipe uses the profile only to pick the provider.
func (service *GenerationService) GenerateRecipe(ctx context.Context, profile models.UserProfile, ingredients []string, prefs models.RecipePreferences) (document models.RecipeDocument, err error) {
	cleaned := CleanIngredients(ingredients)
	if len(cleaned) == 0 {
		return models.RecipeDocument{}, fmt.Errorf("%w: at least one ingredient is required", ErrInvalidPreferences)
	}
	done := service.begin(ai.KindRecipe)
	defer func() { done(err) }()

	raw, err := service.generator.GenerateRecipe(ctx, providerOf(profile), cleaned, prefs)
	if err != nil {
		return models.RecipeDocument{}, err
	}
	return service.parser.ParseRecipe(raw)
}

// Status reports, per kind, whether a request is in flight and how the last
// one failed.
func (service *GenerationService) Status() map[ai.PlanKind]GenerationStatus {
	service.mu.Lock()
	defer service.mu.Unlock()

	result := make(map[ai.PlanKind]GenerationStatus, len(service.states))
	for kind, state := range service.states {
		result[kind] = GenerationStatus{Loading: state.inFlight > 0, LastError: state.lastError}
	}
	return result
}

func (service *GenerationService) begin(kind ai.PlanKind) func(error) {
	service.mu.Lock()
	state := service.states[kind]
	state.inFlight++
	state.lastError = ""
	service.mu.Unlock()

	return func(err error) {
		service.mu.Lock()
		defer service.mu.Unlock()

		state.inFlight--
		if err != nil {
			state.lastError = err.Error()
			service.logger.Warn("generation failed", "kind", kind, "error", err)
			return
		}
		service.logger.Debug("generation finished", "kind", kind)
	}
}

// CleanIngredients trims, drops blanks and keeps the first spelling of each
// ingredient.
func CleanIngredients(ingredients []string) []string {
	cleaned := make([]string, 0, len(ingredients))
	seen := make(map[string]bool, len(ingredients))
	for _, ingredient := range ingredients {
		trimmed := strings.TrimSpace(ingredient)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		cleaned = append(cleaned, trimmed)
	}
	return cleaned
}

func providerOf(profile models.UserProfile) string {
	return strings.ToLower(strings.TrimSpace(profile.Settings.AppSettings.AIProvider))
}

func validateWorkoutPreferences(prefs models.WorkoutPreferences) error {
	if days := strings.TrimSpace(prefs.DaysPerWeek); days != "" {
		count := models.NumberFromText(days)
		if count < 1 || count > 7 {
			return fmt.Errorf("%w: daysPerWeek must be between 1 and 7", ErrInvalidPreferences)
		}
	}
	if minutes := strings.TrimSpace(prefs.TimePerSession); minutes != "" && models.NumberFromText(minutes) <= 0 {
		return fmt.Errorf("%w: timePerSession must be positive", ErrInvalidPreferences)
	}
	return nil
}

func validateNutritionPreferences(prefs models.NutritionPreferences) error {
	if target := strings.TrimSpace(prefs.CalorieTarget); target != "" && models.NumberFromText(target) <= 0 {
		return fmt.Errorf("%w: calorieTarget must be a positive number", ErrInvalidPreferences)
	}
	if meals := strings.TrimSpace(prefs.MealsPerDay); meals != "" && models.NumberFromText(meals) < 1 {
		return fmt.Errorf("%w: mealsPerDay must be at least 1", ErrInvalidPreferences)
	}
	return nil
}
