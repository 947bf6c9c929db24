package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/terraincognita07/fitnutri/internal/ai"
	"github.com/terraincognita07/fitnutri/internal/models"
)

const workoutResponse = `Here is your plan:
{"workoutPlan":{"name":"Full Body","goal":"strength","level":"beginner","frequency":"3","duration":"45",
"schedule":{"monday":{"focus":"Full body","exercises":[{"name":"Squat","sets":3,"reps":"8-10","rest":90}]}}}}`

const nutritionResponse = `{"nutritionPlan":{"name":"Cut","dailyCalories":2000,"macros":{"protein":150,"carbs":200,"fats":67},
"meals":[{"name":"Breakfast","calories":500,"items":[{"food":"Oats","amount":"80g","calories":300}]}]}}`

const recipeResponse = `{"recipe":{"name":"Chicken Rice Bowl","calories":550,"servings":2,
"ingredients":[{"name":"chicken","amount":"200g"}],"instructions":["Cook the rice."]}}`

type stubPlanGenerator struct {
	mu        sync.Mutex
	response  string
	err       error
	providers []string
	recipe    []string
	release   chan struct{}
	started   chan struct{}
}

func (stub *stubPlanGenerator) record(provider string) (string, error) {
	stub.mu.Lock()
	stub.providers = append(stub.providers, provider)
	stub.mu.Unlock()

	if stub.started != nil {
		stub.started <- struct{}{}
	}
	if stub.release != nil {
		<-stub.release
	}
	return stub.response, stub.err
}

func (stub *stubPlanGenerator) GenerateWorkoutPlan(_ context.Context, provider string, _ models.UserProfile, _ models.WorkoutPreferences) (string, error) {
	return stub.record(provider)
}

func (stub *stubPlanGenerator) GenerateNutritionPlan(_ context.Context, provider string, _ models.UserProfile, _ models.NutritionPreferences) (string, error) {
	return stub.record(provider)
}

func (stub *stubPlanGenerator) GenerateRecipe(_ context.Context, provider string, ingredients []string, _ models.RecipePreferences) (string, error) {
	stub.mu.Lock()
	stub.recipe = ingredients
	stub.mu.Unlock()
	return stub.record(provider)
}

func TestGenerateWorkoutPlanParsesResponse(t *testing.T) {
	generator := &stubPlanGenerator{response: workoutResponse}
	service := NewGenerationService(generator, nil, nil)

	document, err := service.GenerateWorkoutPlan(context.Background(), models.DefaultUserProfile(), models.DefaultWorkoutPreferences())
	if err != nil {
		t.Fatalf("GenerateWorkoutPlan() unexpected error: %v", err)
	}
	if document.WorkoutPlan.Name != "Full Body" {
		t.Fatalf("expected parsed plan name, got %q", document.WorkoutPlan.Name)
	}
	if exercises := document.WorkoutPlan.Schedule["monday"].Exercises; len(exercises) != 1 || exercises[0].Sets != 3 {
		t.Fatalf("unexpected schedule %+v", document.WorkoutPlan.Schedule)
	}
	if len(generator.providers) != 1 || generator.providers[0] != models.ProviderGemini {
		t.Fatalf("expected profile provider to be requested, got %v", generator.providers)
	}
}

func TestGenerateUsesProfileProviderSetting(t *testing.T) {
	generator := &stubPlanGenerator{response: nutritionResponse}
	service := NewGenerationService(generator, nil, nil)
	profile := models.DefaultUserProfile()
	profile.Settings.AppSettings.AIProvider = " OpenAI "

	if _, err := service.GenerateNutritionPlan(context.Background(), profile, models.NutritionPreferences{CalorieTarget: "2000"}); err != nil {
		t.Fatalf("GenerateNutritionPlan() unexpected error: %v", err)
	}
	if generator.providers[0] != models.ProviderOpenAI {
		t.Fatalf("expected openai provider, got %q", generator.providers[0])
	}
}

func TestGenerateReturnsProviderErrorAndClearsLoading(t *testing.T) {
	providerErr := &ai.ProviderError{Provider: "gemini", StatusCode: 429, Message: "quota exhausted"}
	service := NewGenerationService(&stubPlanGenerator{err: providerErr}, nil, nil)

	_, err := service.GenerateWorkoutPlan(context.Background(), models.DefaultUserProfile(), models.WorkoutPreferences{})
	var target *ai.ProviderError
	if !errors.As(err, &target) || target.StatusCode != 429 {
		t.Fatalf("expected provider error, got %v", err)
	}

	status := service.Status()[ai.KindWorkout]
	if status.Loading {
		t.Fatal("expected loading to be cleared after failure")
	}
	if status.LastError == "" {
		t.Fatal("expected last error to be recorded")
	}
}

func TestGenerateReturnsParseErrorWithRawText(t *testing.T) {
	service := NewGenerationService(&stubPlanGenerator{response: "I cannot help with that."}, nil, nil)

	_, err := service.GenerateRecipe(context.Background(), models.DefaultUserProfile(), []string{"rice"}, models.RecipePreferences{})
	if !errors.Is(err, ai.ErrUnusableResponse) {
		t.Fatalf("expected unusable response error, got %v", err)
	}
	if raw, ok := ai.RawTextOf(err); !ok || raw != "I cannot help with that." {
		t.Fatalf("expected raw text to be kept, got %q", raw)
	}
	if service.Status()[ai.KindRecipe].Loading {
		t.Fatal("expected loading to be cleared after parse failure")
	}
}

func TestGenerateRecipeCleansIngredients(t *testing.T) {
	generator := &stubPlanGenerator{response: recipeResponse}
	service := NewGenerationService(generator, nil, nil)

	document, err := service.GenerateRecipe(context.Background(), models.DefaultUserProfile(), []string{" chicken", "rice", "", "chicken "}, models.RecipePreferences{})
	if err != nil {
		t.Fatalf("GenerateRecipe() unexpected error: %v", err)
	}
	if document.Recipe.Name != "Chicken Rice Bowl" {
		t.Fatalf("unexpected recipe %+v", document.Recipe)
	}
	if len(generator.recipe) != 2 || generator.recipe[0] != "chicken" || generator.recipe[1] != "rice" {
		t.Fatalf("unexpected ingredients sent %v", generator.recipe)
	}
}

func TestGenerateRejectsInvalidInputBeforeCallingProvider(t *testing.T) {
	generator := &stubPlanGenerator{response: recipeResponse}
	service := NewGenerationService(generator, nil, nil)
	ctx := context.Background()
	profile := models.DefaultUserProfile()

	if _, err := service.GenerateRecipe(ctx, profile, []string{"  "}, models.RecipePreferences{}); !errors.Is(err, ErrInvalidPreferences) {
		t.Fatalf("expected ErrInvalidPreferences for empty ingredients, got %v", err)
	}
	if _, err := service.GenerateWorkoutPlan(ctx, profile, models.WorkoutPreferences{DaysPerWeek: "9"}); !errors.Is(err, ErrInvalidPreferences) {
		t.Fatalf("expected ErrInvalidPreferences for daysPerWeek, got %v", err)
	}
	if _, err := service.GenerateNutritionPlan(ctx, profile, models.NutritionPreferences{CalorieTarget: "lots"}); !errors.Is(err, ErrInvalidPreferences) {
		t.Fatalf("expected ErrInvalidPreferences for calorieTarget, got %v", err)
	}
	if len(generator.providers) != 0 {
		t.Fatalf("expected no provider calls, got %v", generator.providers)
	}
}

func TestGenerationStatusTracksInFlightRequests(t *testing.T) {
	generator := &stubPlanGenerator{
		response: workoutResponse,
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	service := NewGenerationService(generator, nil, nil)

	done := make(chan error, 1)
	go func() {
		_, err := service.GenerateWorkoutPlan(context.Background(), models.DefaultUserProfile(), models.WorkoutPreferences{})
		done <- err
	}()

	<-generator.started
	if !service.Status()[ai.KindWorkout].Loading {
		t.Fatal("expected workout generation to be loading")
	}
	if service.Status()[ai.KindNutrition].Loading {
		t.Fatal("expected nutrition generation to stay idle")
	}

	close(generator.release)
	if err := <-done; err != nil {
		t.Fatalf("GenerateWorkoutPlan() unexpected error: %v", err)
	}
	if status := service.Status()[ai.KindWorkout]; status.Loading || status.LastError != "" {
		t.Fatalf("expected idle status after success, got %+v", status)
	}
}

func TestGenerateHonorsCancelledContext(t *testing.T) {
	generator := &stubPlanGenerator{err: context.Canceled}
	service := NewGenerationService(generator, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := service.GenerateNutritionPlan(ctx, models.DefaultUserProfile(), models.NutritionPreferences{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if service.Status()[ai.KindNutrition].Loading {
		t.Fatal("expected loading to be cleared after cancellation")
	}
}
