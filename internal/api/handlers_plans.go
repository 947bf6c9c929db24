package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitnutri/internal/ai"
	"github.com/terraincognita07/fitnutri/internal/models"
)

type savePlanRequest struct {
	Preferences json.RawMessage `json:"preferences"`
}

// SaveWorkoutPlan takes a {"workoutPlan": ...} document, checked the same
// way as a generated reply, plus optional preferences.
func (handler *Handler) SaveWorkoutPlan(c *fiber.Ctx) error {
	var request savePlanRequest
	if err := decodeBody(c, &request, false); err != nil {
		return handler.respondError(c, err)
	}
	document, err := handler.parser.ParseWorkoutPlan(string(c.Body()))
	if err != nil {
		return handler.respondError(c, err)
	}
	prefs := models.DefaultWorkoutPreferences()
	if err := decodePreferences(request.Preferences, &prefs); err != nil {
		return handler.respondError(c, err)
	}

	saved, err := handler.plans.SaveWorkoutPlan(document, prefs)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (handler *Handler) SaveNutritionPlan(c *fiber.Ctx) error {
	var request savePlanRequest
	if err := decodeBody(c, &request, false); err != nil {
		return handler.respondError(c, err)
	}
	document, err := handler.parser.ParseNutritionPlan(string(c.Body()))
	if err != nil {
		return handler.respondError(c, err)
	}
	var prefs models.NutritionPreferences
	if err := decodePreferences(request.Preferences, &prefs); err != nil {
		return handler.respondError(c, err)
	}

	saved, err := handler.plans.SaveNutritionPlan(document, prefs)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (handler *Handler) SaveRecipe(c *fiber.Ctx) error {
	if err := decodeBody(c, &json.RawMessage{}, false); err != nil {
		return handler.respondError(c, err)
	}
	document, err := handler.parser.ParseRecipe(string(c.Body()))
	if err != nil {
		return handler.respondError(c, err)
	}

	saved, err := handler.plans.SaveRecipe(document)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (handler *Handler) ViewPlan(c *fiber.Ctx) error {
	kind, err := ai.ParsePlanKind(c.Params("kind"))
	if err != nil {
		return handler.respondError(c, err)
	}
	if err := handler.plans.ViewPlan(kind, c.Params("id")); err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) DeletePlan(c *fiber.Ctx) error {
	kind, err := ai.ParsePlanKind(c.Params("kind"))
	if err != nil {
		return handler.respondError(c, err)
	}
	if err := handler.plans.DeletePlan(kind, c.Params("id")); err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) DeleteRecipe(c *fiber.Ctx) error {
	if err := handler.plans.DeletePlan(ai.KindRecipe, c.Params("id")); err != nil {
		return handler.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
