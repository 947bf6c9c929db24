package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	api := app.Group("/api")

	api.Get("/state", handler.GetState)
	api.Get("/state/:slice", handler.GetSlice)
	api.Get("/actions", handler.ListActionTypes)
	api.Post("/actions/:slice/:name", handler.DispatchAction)
	api.Post("/actions/:type", handler.DispatchAction)

	generate := api.Group("/generate")
	generate.Get("/status", handler.GenerationStatus)
	generate.Post("/workout", handler.GenerateWorkoutPlan)
	generate.Post("/nutrition", handler.GenerateNutritionPlan)
	generate.Post("/recipe", handler.GenerateRecipe)

	plans := api.Group("/plans")
	plans.Post("/workout", handler.SaveWorkoutPlan)
	plans.Post("/nutrition", handler.SaveNutritionPlan)
	plans.Post("/:kind/:id/view", handler.ViewPlan)
	plans.Delete("/:kind/:id", handler.DeletePlan)

	recipes := api.Group("/recipes")
	recipes.Post("", handler.SaveRecipe)
	recipes.Delete("/:id", handler.DeleteRecipe)

	exercises := api.Group("/exercises")
	exercises.Get("", handler.ListExercises)
	exercises.Get("/:id", handler.GetExercise)

	api.Get("/metrics", handler.GetBodyMetrics)

	api.Get("/provider", handler.GetProvider)
	api.Put("/provider", handler.SetProvider)

	api.Get("/export", handler.Export)
	api.Post("/import", handler.Import)
	api.Post("/reset", handler.Reset)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
