package api

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitnutri/internal/store"
)

type providerInput struct {
	Provider string `json:"provider"`
}

func (handler *Handler) GetProvider(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"active":    handler.providers.Active(),
		"available": handler.providers.Names(),
		"selected":  handler.store.State().User.Settings.AppSettings.AIProvider,
	})
}

// SetProvider switches the default provider and records the choice in the
// user's app settings, which take precedence for later generations.
func (handler *Handler) SetProvider(c *fiber.Ctx) error {
	var input providerInput
	if err := decodeBody(c, &input, false); err != nil {
		return handler.respondError(c, err)
	}
	name := strings.ToLower(strings.TrimSpace(input.Provider))
	if err := handler.providers.SetActive(name); err != nil {
		return handler.respondError(c, err)
	}

	appSettings := handler.store.State().User.Settings.AppSettings
	appSettings.AIProvider = name
	patch, err := json.Marshal(map[string]any{"appSettings": appSettings})
	if err != nil {
		return handler.respondError(c, err)
	}
	if err := handler.store.Dispatch(store.UpdateUserSettings{Patch: patch}); err != nil {
		return handler.respondError(c, err)
	}
	return handler.GetProvider(c)
}
