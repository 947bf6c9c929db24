package ai

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/terraincognita07/fitnutri/internal/models"
)

// Router owns the named provider clients and which of them is active.
// Calls run without holding the lock, so concurrent generations never wait
// on each other.
type Router struct {
	mu      sync.RWMutex
	active  string
	clients map[string]Client
	prompts *PromptBuilder
	logger  hclog.Logger
}

func NewRouter(prompts *PromptBuilder, active string, logger hclog.Logger, clients ...Client) (*Router, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if len(clients) == 0 {
		return nil, fmt.Errorf("%w: no providers configured", ErrUnknownProvider)
	}

	router := &Router{
		clients: make(map[string]Client, len(clients)),
		prompts: prompts,
		logger:  logger.Named("router"),
	}
	for _, client := range clients {
		router.clients[client.Name()] = client
	}
	if active == "" {
		active = clients[0].Name()
	}
	if err := router.SetActive(active); err != nil {
		return nil, err
	}
	return router, nil
}

// SetActive switches the default provider. Requests already in flight keep
// the client they resolved.
func (router *Router) SetActive(name string) error {
	if _, ok := router.clients[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}

	router.mu.Lock()
	previous := router.active
	router.active = name
	router.mu.Unlock()

	if previous != "" && previous != name {
		router.logger.Info("active provider changed", "from", previous, "to", name)
	}
	return nil
}

func (router *Router) Active() string {
	router.mu.RLock()
	defer router.mu.RUnlock()
	return router.active
}

func (router *Router) Names() []string {
	names := make([]string, 0, len(router.clients))
	for name := range router.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the named client. An empty name means the active one and
// an unknown name falls back to it with a warning.
func (router *Router) Resolve(name string) Client {
	active := router.Active()
	if name == "" {
		return router.clients[active]
	}
	client, ok := router.clients[name]
	if !ok {
		router.logger.Warn("provider not found, using active provider", "provider", name, "active", active)
		return router.clients[active]
	}
	return client
}

func (router *Router) GenerateWorkoutPlan(ctx context.Context, provider string, profile models.UserProfile, prefs models.WorkoutPreferences) (string, error) {
	prompt, err := router.prompts.WorkoutPrompt(profile, prefs)
	if err != nil {
		return "", err
	}
	return router.generate(ctx, provider, KindWorkout, prompt)
}

func (router *Router) GenerateNutritionPlan(ctx context.Context, provider string, profile models.UserProfile, prefs models.NutritionPreferences) (string, error) {
	prompt, err := router.prompts.NutritionPrompt(profile, prefs)
	if err != nil {
		return "", err
	}
	return router.generate(ctx, provider, KindNutrition, prompt)
}

func (router *Router) GenerateRecipe(ctx context.Context, provider string, ingredients []string, prefs models.RecipePreferences) (string, error) {
	prompt, err := router.prompts.RecipePrompt(ingredients, prefs)
	if err != nil {
		return "", err
	}
	return router.generate(ctx, provider, KindRecipe, prompt)
}

func (router *Router) generate(ctx context.Context, provider string, kind PlanKind, prompt string) (string, error) {
	client := router.Resolve(provider)
	router.logger.Debug("sending prompt", "provider", client.Name(), "kind", kind, "prompt_bytes", len(prompt))

	text, err := client.Generate(ctx, prompt)
	if err != nil {
		router.logger.Warn("provider call failed", "provider", client.Name(), "kind", kind, "error", err)
		return "", err
	}
	return text, nil
}
