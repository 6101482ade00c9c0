package api

import (
	"github.com/gofiber/fiber/v2"
)

// NewApp wires handler into a fiber app under /api/v1.
func NewApp(handler SchedulerHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "os-scheduler",
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	v1 := api.Group("/v1")
	{
		v1.Post("/simulate", handler.Simulate)
		v1.Post("/schedule/:algorithm", handler.Schedule)
		v1.Post("/timeline/:algorithm", handler.Timeline)
		v1.Get("/algorithms", handler.Algorithms)
		v1.Get("/config", handler.GetConfig)
		v1.Put("/config", handler.UpdateConfig)
		v1.Get("/runs", handler.ListRuns)
		v1.Get("/runs/:id", handler.GetRun)
	}

	return app
}
