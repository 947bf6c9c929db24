package api

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitnutri/internal/models"
)

type generateRequest struct {
	Profile     *models.UserProfile `json:"profile"`
	Preferences json.RawMessage     `json:"preferences"`
	Ingredients []string            `json:"ingredients"`
	Provider    string              `json:"provider"`
	Save        bool                `json:"save"`
}

type generateResponse struct {
	Document        any      `json:"document"`
	Saved           any      `json:"saved,omitempty"`
	PlannedCalories *float64 `json:"plannedCalories,omitempty"`
}

func (handler *Handler) GenerationStatus(c *fiber.Ctx) error {
	return c.JSON(handler.generation.Status())
}

func (handler *Handler) GenerateWorkoutPlan(c *fiber.Ctx) error {
	request, profile, err := handler.readGenerateRequest(c)
	if err != nil {
		return handler.respondError(c, err)
	}
	prefs := models.DefaultWorkoutPreferences()
	if err := decodePreferences(request.Preferences, &prefs); err != nil {
		return handler.respondError(c, err)
	}

	document, err := handler.generation.GenerateWorkoutPlan(c.UserContext(), profile, prefs)
	if err != nil {
		return handler.respondError(c, err)
	}
	response := generateResponse{Document: document}
	if request.Save {
		saved, err := handler.plans.SaveWorkoutPlan(document, prefs)
		if err != nil {
			return handler.respondError(c, err)
		}
		response.Saved = saved
	}
	return c.JSON(response)
}

func (handler *Handler) GenerateNutritionPlan(c *fiber.Ctx) error {
	request, profile, err := handler.readGenerateRequest(c)
	if err != nil {
		return handler.respondError(c, err)
	}
	var prefs models.NutritionPreferences
	if err := decodePreferences(request.Preferences, &prefs); err != nil {
		return handler.respondError(c, err)
	}

	document, err := handler.generation.GenerateNutritionPlan(c.UserContext(), profile, prefs)
	if err != nil {
		return handler.respondError(c, err)
	}
	planned := document.NutritionPlan.PlannedCalories()
	response := generateResponse{Document: document, PlannedCalories: &planned}
	if request.Save {
		saved, err := handler.plans.SaveNutritionPlan(document, prefs)
		if err != nil {
			return handler.respondError(c, err)
		}
		response.Saved = saved
	}
	return c.JSON(response)
}

func (handler *Handler) GenerateRecipe(c *fiber.Ctx) error {
	request, profile, err := handler.readGenerateRequest(c)
	if err != nil {
		return handler.respondError(c, err)
	}
	var prefs models.RecipePreferences
	if err := decodePreferences(request.Preferences, &prefs); err != nil {
		return handler.respondError(c, err)
	}

	document, err := handler.generation.GenerateRecipe(c.UserContext(), profile, request.Ingredients, prefs)
	if err != nil {
		return handler.respondError(c, err)
	}
	response := generateResponse{Document: document}
	if request.Save {
		saved, err := handler.plans.SaveRecipe(document)
		if err != nil {
			return handler.respondError(c, err)
		}
		response.Saved = saved
	}
	return c.JSON(response)
}

// readGenerateRequest falls back to the stored user profile and lets the
// request pick a provider for this call only.
func (handler *Handler) readGenerateRequest(c *fiber.Ctx) (generateRequest, models.UserProfile, error) {
	var request generateRequest
	if err := decodeBody(c, &request, true); err != nil {
		return generateRequest{}, models.UserProfile{}, err
	}

	profile := handler.store.State().User
	if request.Profile != nil {
		profile = *request.Profile
	}
	if provider := strings.TrimSpace(request.Provider); provider != "" {
		profile.Settings.AppSettings.AIProvider = provider
	}
	return request, profile, nil
}

func decodePreferences(raw json.RawMessage, target any) error {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	return json.Unmarshal(raw, target)
}
