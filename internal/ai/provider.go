package ai

import (
	"context"
	"fmt"
)

type PlanKind string

const (
	KindWorkout   PlanKind = "workout"
	KindNutrition PlanKind = "nutrition"
	KindRecipe    PlanKind = "recipe"
)

// TopLevelKey is the object key a reply of this kind must carry.
func (kind PlanKind) TopLevelKey() string {
	switch kind {
	case KindWorkout:
		return "workoutPlan"
	case KindNutrition:
		return "nutritionPlan"
	case KindRecipe:
		return "recipe"
	default:
		return ""
	}
}

func ParsePlanKind(raw string) (PlanKind, error) {
	kind := PlanKind(raw)
	if kind.TopLevelKey() == "" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, raw)
	}
	return kind, nil
}

// Client sends one prompt to a generative-text backend and returns the
// reply text untouched.
type Client interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	defaultTemperature     float32 = 0.7
	defaultMaxOutputTokens         = 2000
)

type unconfiguredClient struct {
	name string
}

// UnconfiguredClient stands in for a provider that has no API key. It stays
// selectable and fails every call with ErrMissingAPIKey.
func UnconfiguredClient(name string) Client {
	return unconfiguredClient{name: name}
}

func (client unconfiguredClient) Name() string {
	return client.name
}

func (client unconfiguredClient) Generate(context.Context, string) (string, error) {
	return "", &ProviderError{Provider: client.name, Message: ErrMissingAPIKey.Error(), Err: ErrMissingAPIKey}
}
