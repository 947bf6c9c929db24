package api

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitnutri/internal/ai"
	"github.com/terraincognita07/fitnutri/internal/catalog"
	"github.com/terraincognita07/fitnutri/internal/services"
	"github.com/terraincognita07/fitnutri/internal/store"
)

var errEmptyBody = errors.New("request body is empty")

func (handler *Handler) apiError(c *fiber.Ctx, status int, key string, extra fiber.Map, args ...any) error {
	payload := fiber.Map{
		"error": handler.i18n.Translatef(currentLanguage(c), key, args...),
		"code":  key,
	}
	for field, value := range extra {
		payload[field] = value
	}
	return c.Status(status).JSON(payload)
}

// respondError maps domain errors to a status code and a localized message.
func (handler *Handler) respondError(c *fiber.Ctx, err error) error {
	var providerErr *ai.ProviderError
	var parseErr *ai.ParseError
	var validationErr *ai.ValidationError
	language := currentLanguage(c)

	switch {
	case errors.As(err, &parseErr):
		key := "error.parse." + string(parseErr.Kind)
		var args []any
		if parseErr.Kind == ai.FailureInvalidSchema {
			args = append(args, handler.i18n.Translate(language, "kind."+string(parseErr.Plan)))
		}
		return handler.apiError(c, fiber.StatusUnprocessableEntity, key, fiber.Map{
			"kind":    parseErr.Kind,
			"plan":    parseErr.Plan,
			"reason":  parseErr.Reason,
			"rawText": parseErr.RawText,
		}, args...)
	case errors.As(err, &validationErr):
		return handler.apiError(c, fiber.StatusUnprocessableEntity, "error.parse.validation", fiber.Map{
			"kind":    ai.FailureInvalidSchema,
			"plan":    validationErr.Plan,
			"field":   validationErr.Field,
			"reason":  validationErr.Reason,
			"rawText": validationErr.RawText,
		}, validationErr.Field, validationErr.Reason)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		provider := ""
		if errors.As(err, &providerErr) {
			provider = providerErr.Provider
		}
		return handler.apiError(c, fiber.StatusGatewayTimeout, "error.provider_failed", fiber.Map{"provider": provider}, provider)
	case errors.As(err, &providerErr):
		extra := fiber.Map{"provider": providerErr.Provider, "status": providerErr.StatusCode, "reason": providerErr.Message}
		if providerErr.StatusCode > 0 {
			return handler.apiError(c, fiber.StatusBadGateway, "error.provider_status", extra, providerErr.Provider, providerErr.StatusCode)
		}
		return handler.apiError(c, fiber.StatusBadGateway, "error.provider_failed", extra, providerErr.Provider)
	case errors.Is(err, services.ErrInvalidPreferences):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_preferences", fiber.Map{"reason": err.Error()})
	case errors.Is(err, services.ErrStorageWrite):
		return handler.apiError(c, fiber.StatusServiceUnavailable, "error.storage", nil)
	case errors.Is(err, services.ErrInvalidImport):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_import", fiber.Map{"reason": err.Error()})
	case errors.Is(err, services.ErrPlanNotFound):
		return handler.apiError(c, fiber.StatusNotFound, "error.plan_not_found", nil)
	case errors.Is(err, store.ErrUnknownExercise), errors.Is(err, catalog.ErrExerciseNotFound):
		return handler.apiError(c, fiber.StatusNotFound, "error.exercise_not_found", nil)
	case errors.Is(err, store.ErrUnknownAction):
		return handler.apiError(c, fiber.StatusNotFound, "error.unknown_action", nil)
	case errors.Is(err, store.ErrInvalidAction):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_action", fiber.Map{"reason": err.Error()})
	case errors.Is(err, ai.ErrUnknownProvider):
		return handler.apiError(c, fiber.StatusBadRequest, "error.unknown_provider", nil)
	case errors.Is(err, ai.ErrUnsupportedKind):
		return handler.apiError(c, fiber.StatusNotFound, "error.unsupported_kind", nil)
	case errors.Is(err, errEmptyBody):
		return handler.apiError(c, fiber.StatusBadRequest, "error.bad_request", nil)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return handler.apiError(c, fiber.StatusBadRequest, "error.bad_request", fiber.Map{"reason": err.Error()})
	}

	handler.logger.Error("request failed", "path", c.Path(), "error", err)
	return handler.apiError(c, fiber.StatusInternalServerError, "error.internal", nil)
}

// decodeBody decodes a JSON request body into target. An empty body is
// accepted when allowEmpty is set and leaves target untouched.
func decodeBody(c *fiber.Ctx, target any, allowEmpty bool) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		if allowEmpty {
			return nil
		}
		return errEmptyBody
	}
	return json.Unmarshal(body, target)
}

func asFiberError(err error, target **fiber.Error) bool {
	return errors.As(err, target)
}

// ErrorHandler answers errors that escaped a handler, such as unknown routes.
func (handler *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if asFiberError(err, &fiberErr) {
		if fiberErr.Code == fiber.StatusNotFound {
			return handler.apiError(c, fiber.StatusNotFound, "error.not_found", nil)
		}
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}
	return handler.respondError(c, err)
}
