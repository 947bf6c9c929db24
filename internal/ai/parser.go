package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/terraincognita07/fitnutri/internal/models"
)

// Parser turns untrusted reply text into plan documents. Only structure is
// checked; numbers are taken as the model wrote them.
type Parser struct {
	logger hclog.Logger
}

func NewParser(logger hclog.Logger) *Parser {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Parser{logger: logger.Named("parser")}
}

// Parse returns a models.WorkoutPlanDocument, models.NutritionPlanDocument
// or models.RecipeDocument depending on kind.
func (parser *Parser) Parse(kind PlanKind, raw string) (any, error) {
	switch kind {
	case KindWorkout:
		return parser.ParseWorkoutPlan(raw)
	case KindNutrition:
		return parser.ParseNutritionPlan(raw)
	case KindRecipe:
		return parser.ParseRecipe(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
}

func (parser *Parser) ParseWorkoutPlan(raw string) (models.WorkoutPlanDocument, error) {
	var document models.WorkoutPlanDocument
	if err := parser.decode(KindWorkout, raw, validateWorkoutShape, &document); err != nil {
		return models.WorkoutPlanDocument{}, err
	}
	document.WorkoutPlan.Schedule = models.NormalizeSchedule(document.WorkoutPlan.Schedule)
	return document, nil
}

func (parser *Parser) ParseNutritionPlan(raw string) (models.NutritionPlanDocument, error) {
	var document models.NutritionPlanDocument
	if err := parser.decode(KindNutrition, raw, validateNutritionShape, &document); err != nil {
		return models.NutritionPlanDocument{}, err
	}
	body := document.NutritionPlan
	if planned := body.PlannedCalories(); planned != float64(body.DailyCalories) {
		parser.logger.Debug("meal calories differ from the daily target",
			"dailyCalories", float64(body.DailyCalories), "plannedCalories", planned)
	}
	return document, nil
}

func (parser *Parser) ParseRecipe(raw string) (models.RecipeDocument, error) {
	var document models.RecipeDocument
	err := parser.decode(KindRecipe, raw, validateRecipeShape, &document)
	return document, err
}

type shapeCheck func(body map[string]any) (field string, reason string, ok bool)

func (parser *Parser) decode(kind PlanKind, raw string, check shapeCheck, target any) error {
	err := parser.decodeInto(kind, raw, check, target)
	if err != nil {
		parser.logger.Debug("unusable reply", "kind", kind, "error", err, "raw", raw)
	}
	return err
}

func (parser *Parser) decodeInto(kind PlanKind, raw string, check shapeCheck, target any) error {
	payload, decoded, ok := extractJSON(raw)
	if !ok {
		return &ParseError{
			Kind:    FailureInvalidJSON,
			Plan:    kind,
			Reason:  "reply contains no decodable JSON object",
			RawText: raw,
		}
	}

	key := kind.TopLevelKey()
	object, isObject := decoded.(map[string]any)
	if !isObject {
		return &ParseError{Kind: FailureInvalidSchema, Plan: kind, Reason: "reply is not a JSON object", RawText: raw}
	}
	body, isBody := object[key].(map[string]any)
	if !isBody {
		return &ParseError{
			Kind:    FailureInvalidSchema,
			Plan:    kind,
			Reason:  fmt.Sprintf("missing %q object", key),
			RawText: raw,
		}
	}

	if field, reason, valid := check(body); !valid {
		return &ValidationError{Plan: kind, Field: key + "." + field, Reason: reason, RawText: raw}
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return &ValidationError{Plan: kind, Field: key, Reason: err.Error(), RawText: raw}
	}
	return nil
}

// extractJSON decodes the whole text, and failing that the span from the
// first '{' to the last '}'.
func extractJSON(raw string) ([]byte, any, bool) {
	trimmed := strings.TrimSpace(raw)
	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
		return []byte(trimmed), decoded, true
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, nil, false
	}
	candidate := []byte(raw[start : end+1])
	decoded = nil
	if err := json.Unmarshal(candidate, &decoded); err != nil {
		return nil, nil, false
	}
	return candidate, decoded, true
}

func validateWorkoutShape(body map[string]any) (string, string, bool) {
	schedule, ok := body["schedule"].(map[string]any)
	if !ok {
		return "schedule", "must be an object of days", false
	}
	if len(schedule) == 0 {
		return "schedule", "must contain at least one day", false
	}
	days := make(map[string]string, len(schedule))
	for day, value := range schedule {
		if !models.IsWeekday(day) {
			return "schedule." + day, "is not a weekday", false
		}
		normalized := models.NormalizeDayKey(day)
		if other, seen := days[normalized]; seen {
			return "schedule." + day, fmt.Sprintf("names the same day as %q", other), false
		}
		days[normalized] = day

		entry, ok := value.(map[string]any)
		if !ok {
			return "schedule." + day, "must be an object", false
		}
		if _, ok := entry["focus"]; !ok {
			return "schedule." + day + ".focus", "is required", false
		}
		if _, ok := entry["exercises"].([]any); !ok {
			return "schedule." + day + ".exercises", "must be an array", false
		}
	}
	return "", "", true
}

func validateNutritionShape(body map[string]any) (string, string, bool) {
	meals, ok := body["meals"].([]any)
	if !ok {
		return "meals", "must be an array", false
	}
	if len(meals) == 0 {
		return "meals", "must contain at least one meal", false
	}
	for index, value := range meals {
		meal, ok := value.(map[string]any)
		if !ok {
			return fmt.Sprintf("meals[%d]", index), "must be an object", false
		}
		if _, ok := meal["items"].([]any); !ok {
			return fmt.Sprintf("meals[%d].items", index), "must be an array", false
		}
	}
	return "", "", true
}

func validateRecipeShape(body map[string]any) (string, string, bool) {
	for _, field := range []string{"ingredients", "instructions"} {
		values, ok := body[field].([]any)
		if !ok {
			return field, "must be an array", false
		}
		if len(values) == 0 {
			return field, "must not be empty", false
		}
	}
	return "", "", true
}
