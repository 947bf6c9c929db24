package services

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/terraincognita07/fitnutri/internal/models"
	"github.com/terraincognita07/fitnutri/internal/persistence"
	"github.com/terraincognita07/fitnutri/internal/store"
)

type stubBatchFailingBackend struct {
	*persistence.MemoryBackend
}

func (stub *stubBatchFailingBackend) SetMany(map[string]string) error {
	return errors.New("disk full")
}

func newPersistentStoreForTest(t *testing.T, backend persistence.Backend) (*store.Store, *persistence.Gateway) {
	t.Helper()

	gateway := persistence.NewGateway(backend, hclog.NewNullLogger())
	domain := store.New(store.Options{
		Preloaded:  store.Rehydrate(gateway),
		Middleware: []store.Middleware{store.Persist(gateway, nil)},
	})
	return domain, gateway
}

func seedStore(t *testing.T, domain *store.Store) {
	t.Helper()

	weight := 72.5
	actions := []store.Action{
		store.UpdatePersonalInfo{Patch: json.RawMessage(`{"name":"Sam","age":"31"}`)},
		store.AddWorkoutPlan{WorkoutPlan: models.WorkoutPlanBody{Name: "Push Pull Legs"}},
		store.AddNutritionPlan{NutritionPlan: models.NutritionPlanBody{Name: "Lean"}},
		store.SaveRecipe{Recipe: models.RecipeBody{Name: "Overnight Oats"}},
		store.AddBodyMeasurement{Measurement: models.BodyMeasurement{Date: "2026-03-01", Weight: &weight}},
		store.ToggleFavoriteExercise{ExerciseID: "deadlift"},
	}
	for _, action := range actions {
		if err := domain.Dispatch(action); err != nil {
			t.Fatalf("Dispatch(%s) unexpected error: %v", action.Type(), err)
		}
	}
}

func TestExportImportRoundTripIntoFreshStore(t *testing.T) {
	source, sourceGateway := newPersistentStoreForTest(t, persistence.NewMemoryBackend())
	seedStore(t, source)
	exporter := NewTransferService(source, sourceGateway, nil)

	payload, fileName, err := exporter.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON() unexpected error: %v", err)
	}
	if want := ExportFileName(time.Now()); fileName != want {
		t.Fatalf("expected file name %q, got %q", want, fileName)
	}

	targetBackend := persistence.NewMemoryBackend()
	target, targetGateway := newPersistentStoreForTest(t, targetBackend)
	importer := NewTransferService(target, targetGateway, nil)
	if err := importer.Import(payload); err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}

	want := source.State()
	got := target.State()
	if !reflect.DeepEqual(got.User, want.User) {
		t.Fatalf("user mismatch\nwant %+v\ngot  %+v", want.User, got.User)
	}
	if !reflect.DeepEqual(got.Progress, want.Progress) {
		t.Fatalf("progress mismatch\nwant %+v\ngot  %+v", want.Progress, got.Progress)
	}
	if !reflect.DeepEqual(got.Exercise.FavoriteExercises, want.Exercise.FavoriteExercises) {
		t.Fatalf("favorites mismatch: want %v, got %v", want.Exercise.FavoriteExercises, got.Exercise.FavoriteExercises)
	}
	if len(got.Workout.WorkoutPlans) != 1 || got.Workout.WorkoutPlans[0].ID != want.Workout.WorkoutPlans[0].ID {
		t.Fatalf("workout plans mismatch: %+v", got.Workout.WorkoutPlans)
	}
	if !got.Workout.WorkoutPlans[0].CreatedAt.Equal(want.Workout.WorkoutPlans[0].CreatedAt) {
		t.Fatal("expected createdAt to survive the round trip")
	}
	if len(got.Nutrition.SavedRecipes) != 1 {
		t.Fatalf("expected saved recipe to be imported, got %d", len(got.Nutrition.SavedRecipes))
	}

	reloaded := store.New(store.Options{Preloaded: store.Rehydrate(targetGateway)}).State()
	if reloaded.User.PersonalInfo.Name != "Sam" || len(reloaded.Progress.BodyMeasurements) != 1 {
		t.Fatalf("expected imported data to be persisted, got %+v", reloaded.User.PersonalInfo)
	}
	if keys := targetBackend.Keys(); len(keys) != len(persistence.KnownKeys()) {
		t.Fatalf("expected every slice key written, got %v", keys)
	}
}

func TestImportInvalidDocumentLeavesStateUntouched(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `{"user":`},
		{name: "array", payload: `[1,2,3]`},
		{name: "missing progress", payload: `{"user":{},"workoutPlans":{},"nutritionPlans":{}}`},
		{name: "null section", payload: `{"user":{},"workoutPlans":{},"nutritionPlans":null,"progress":{}}`},
		{name: "wrong section type", payload: `{"user":{},"workoutPlans":[],"nutritionPlans":{},"progress":{}}`},
		{name: "bad nested field", payload: `{"user":{},"workoutPlans":{"workoutPlans":"x"},"nutritionPlans":{},"progress":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := persistence.NewMemoryBackend()
			domain, gateway := newPersistentStoreForTest(t, backend)
			seedStore(t, domain)
			before := domain.State()
			storedBefore, _ := gateway.Load(persistence.KeyUser)

			err := NewTransferService(domain, gateway, nil).Import([]byte(tt.payload))
			if !errors.Is(err, ErrInvalidImport) {
				t.Fatalf("expected ErrInvalidImport, got %v", err)
			}
			if !reflect.DeepEqual(domain.State(), before) {
				t.Fatal("expected live state to stay unchanged")
			}
			storedAfter, _ := gateway.Load(persistence.KeyUser)
			if string(storedAfter) != string(storedBefore) {
				t.Fatal("expected persisted user to stay unchanged")
			}
		})
	}
}

func TestImportKeepsExerciseDataWhenSectionAbsent(t *testing.T) {
	domain, gateway := newPersistentStoreForTest(t, persistence.NewMemoryBackend())
	seedStore(t, domain)

	payload := `{"user":{"personalInfo":{"name":"Alex"}},"workoutPlans":{},"nutritionPlans":{},"progress":{}}`
	if err := NewTransferService(domain, gateway, nil).Import([]byte(payload)); err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}

	state := domain.State()
	if state.User.PersonalInfo.Name != "Alex" {
		t.Fatalf("expected imported user, got %q", state.User.PersonalInfo.Name)
	}
	if state.User.Settings.AppSettings.AIProvider != models.ProviderGemini {
		t.Fatalf("expected omitted user fields to take defaults, got %+v", state.User.Settings.AppSettings)
	}
	if len(state.Workout.WorkoutPlans) != 0 || state.Workout.WorkoutPlans == nil {
		t.Fatalf("expected empty workout plans, got %#v", state.Workout.WorkoutPlans)
	}
	if !reflect.DeepEqual(state.Exercise.FavoriteExercises, []string{"deadlift"}) {
		t.Fatalf("expected exercise data kept, got %v", state.Exercise.FavoriteExercises)
	}
}

func TestImportStorageFailureLeavesStateUntouched(t *testing.T) {
	backend := &stubBatchFailingBackend{MemoryBackend: persistence.NewMemoryBackend()}
	domain, gateway := newPersistentStoreForTest(t, backend)
	seedStore(t, domain)
	before := domain.State()

	payload := `{"user":{},"workoutPlans":{},"nutritionPlans":{},"progress":{}}`
	err := NewTransferService(domain, gateway, nil).Import([]byte(payload))
	if !errors.Is(err, ErrInvalidImport) || !errors.Is(err, ErrStorageWrite) {
		t.Fatalf("expected storage write failure, got %v", err)
	}
	if !reflect.DeepEqual(domain.State(), before) {
		t.Fatal("expected live state to stay unchanged")
	}
}

func TestResetClearsStorageAndState(t *testing.T) {
	backend := persistence.NewMemoryBackend()
	domain, gateway := newPersistentStoreForTest(t, backend)
	seedStore(t, domain)

	if err := NewTransferService(domain, gateway, nil).Reset(); err != nil {
		t.Fatalf("Reset() unexpected error: %v", err)
	}
	if keys := backend.Keys(); len(keys) != 0 {
		t.Fatalf("expected storage cleared, got %v", keys)
	}
	if !reflect.DeepEqual(domain.State(), store.DefaultState()) {
		t.Fatalf("expected default state, got %+v", domain.State())
	}
}
