package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/terraincognita07/fitnutri/internal/models"
	"github.com/terraincognita07/fitnutri/internal/persistence"
	"github.com/terraincognita07/fitnutri/internal/store"
)

const exportFileDateLayout = "2006-01-02"

var (
	ErrInvalidImport = errors.New("invalid import data")
	ErrStorageWrite  = errors.New("storage write failed")
)

// ExportDocument is the portable snapshot of every slice. Its keys match the
// storage keys without the "fitness_" prefix.
type ExportDocument struct {
	User           models.UserProfile   `json:"user"`
	WorkoutPlans   store.WorkoutState   `json:"workoutPlans"`
	NutritionPlans store.NutritionState `json:"nutritionPlans"`
	Progress       store.ProgressState  `json:"progress"`
	ExerciseData   store.ExerciseState  `json:"exerciseData"`
	ExportDate     time.Time            `json:"exportDate"`
}

// ReplaceableStore is a state holder whose whole tree can be swapped.
type ReplaceableStore interface {
	State() store.State
	Replace(preloaded store.Preloaded)
}

type TransferService struct {
	store   ReplaceableStore
	gateway *persistence.Gateway
	now     func() time.Time
	logger  hclog.Logger
}

func NewTransferService(stateStore ReplaceableStore, gateway *persistence.Gateway, logger hclog.Logger) *TransferService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &TransferService{
		store:   stateStore,
		gateway: gateway,
		now:     time.Now,
		logger:  logger.Named("transfer"),
	}
}

func (service *TransferService) Export() ExportDocument {
	state := service.store.State()
	return ExportDocument{
		User:           state.User,
		WorkoutPlans:   state.Workout,
		NutritionPlans: state.Nutrition,
		Progress:       state.Progress,
		ExerciseData:   state.Exercise,
		ExportDate:     service.now().UTC(),
	}
}

// ExportJSON returns the encoded export together with its download file name.
func (service *TransferService) ExportJSON() ([]byte, string, error) {
	document := service.Export()
	payload, err := json.Marshal(document)
	if err != nil {
		return nil, "", fmt.Errorf("encode export: %w", err)
	}
	return payload, ExportFileName(document.ExportDate), nil
}

func ExportFileName(exportedAt time.Time) string {
	return fmt.Sprintf("fitness_data_%s.json", exportedAt.UTC().Format(exportFileDateLayout))
}

// Import validates the whole document before anything is written, then
// overwrites the stored slices in one batch and swaps the live state. A
// missing exerciseData section leaves the current exercise data in place.
func (service *TransferService) Import(data []byte) error {
	preloaded, err := decodeImport(data, service.store.State().Exercise)
	if err != nil {
		service.logger.Warn("import rejected", "error", err)
		return err
	}

	values := map[string]any{
		persistence.KeyUser:           *preloaded.User,
		persistence.KeyWorkoutPlans:   *preloaded.Workout,
		persistence.KeyNutritionPlans: *preloaded.Nutrition,
		persistence.KeyProgress:       *preloaded.Progress,
		persistence.KeyExerciseData:   *preloaded.Exercise,
	}
	if !service.gateway.SaveAll(values) {
		return fmt.Errorf("%w: %w", ErrInvalidImport, ErrStorageWrite)
	}

	service.store.Replace(preloaded)
	service.logger.Info("import applied")
	return nil
}

// Reset removes every stored slice and returns the live state to defaults.
// The in-memory reset happens even when storage could not be cleared.
func (service *TransferService) Reset() error {
	cleared := service.gateway.ClearAll(persistence.KnownKeys())
	service.store.Replace(store.Preloaded{})
	if !cleared {
		return ErrStorageWrite
	}
	return nil
}

func decodeImport(data []byte, currentExercise store.ExerciseState) (store.Preloaded, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return store.Preloaded{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if sections == nil {
		return store.Preloaded{}, fmt.Errorf("%w: document must be an object", ErrInvalidImport)
	}

	for _, key := range []string{"user", "workoutPlans", "nutritionPlans", "progress"} {
		if isNullSection(sections[key]) {
			return store.Preloaded{}, fmt.Errorf("%w: missing %s", ErrInvalidImport, key)
		}
	}

	user := models.DefaultUserProfile()
	var workout store.WorkoutState
	var nutrition store.NutritionState
	var progress store.ProgressState
	var exercise store.ExerciseState

	targets := []struct {
		key    string
		target any
	}{
		{key: "user", target: &user},
		{key: "workoutPlans", target: &workout},
		{key: "nutritionPlans", target: &nutrition},
		{key: "progress", target: &progress},
		{key: "exerciseData", target: &exercise},
	}
	for _, section := range targets {
		raw := sections[section.key]
		if isNullSection(raw) {
			continue
		}
		if err := decodeSection(raw, section.target); err != nil {
			return store.Preloaded{}, fmt.Errorf("%w: %s: %v", ErrInvalidImport, section.key, err)
		}
	}

	if isNullSection(sections["exerciseData"]) {
		exercise = currentExercise
	}

	normalized := store.Preloaded{
		User:      &user,
		Workout:   &workout,
		Nutrition: &nutrition,
		Exercise:  &exercise,
		Progress:  &progress,
	}.Resolve()
	return normalized.Preloaded(), nil
}

func decodeSection(raw json.RawMessage, target any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errors.New("section must be an object")
	}
	return json.Unmarshal(trimmed, target)
}

func isNullSection(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
