package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hashicorp/go-hclog"
)

// Photos travel inline as data URLs, so bodies are allowed to be large.
const bodyLimit = 32 * 1024 * 1024

type AppOptions struct {
	Logger       hclog.Logger
	AllowOrigins []string
}

func NewApp(handler *Handler, options AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "fitnutri",
		DisableStartupMessage: true,
		BodyLimit:             bodyLimit,
		ErrorHandler:          handler.ErrorHandler,
	})

	origins := "*"
	if len(options.AllowOrigins) > 0 {
		origins = strings.Join(options.AllowOrigins, ",")
	}

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Accept,Accept-Language",
	}))
	app.Use(RequestLogger(options.Logger))
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	return app
}
