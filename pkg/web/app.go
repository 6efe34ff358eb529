package web

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// NewApp assembles the fiber application with its middleware and routes.
func NewApp(handlers *APIHandlers) *fiber.App {
	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("natctl API")
	})

	app.Post("/interpret", handlers.Interpret)
	app.Post("/validate", handlers.ValidateAction)
	app.Post("/validate-json", handlers.ValidateJSON)

	commands := app.Group("/commands")
	commands.Post("/", handlers.SubmitCommand)
	commands.Get("/:id", handlers.GetCommand)

	app.Get("/history", handlers.GetHistory)
	app.Get("/kinds", handlers.GetKinds)
	app.Get("/health", handlers.HealthCheck)

	return app
}
