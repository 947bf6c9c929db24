package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hashicorp/go-hclog"
)

const (
	languageCookieName = "fitnutri_lang"
	contextLanguageKey = "current_language"
)

func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := handler.i18n.DetectFromAcceptLanguage(c.Get("Accept-Language"))
	if cookieLanguage := c.Cookies(languageCookieName); cookieLanguage != "" {
		language = handler.i18n.NormalizeLanguage(cookieLanguage)
	}
	if queryLanguage := c.Query("lang"); queryLanguage != "" {
		language = handler.i18n.NormalizeLanguage(queryLanguage)
	}

	c.Locals(contextLanguageKey, language)
	return c.Next()
}

// RequestLogger logs one line per request once the handler chain returns.
func RequestLogger(logger hclog.Logger) fiber.Handler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("http")

	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fiberErr *fiber.Error
			if asFiberError(err, &fiberErr) {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		fields := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(started),
		}
		if status >= fiber.StatusInternalServerError {
			logger.Warn("request failed", fields...)
		} else {
			logger.Debug("request", fields...)
		}
		return err
	}
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}
