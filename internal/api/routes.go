package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/homemadechefs/chefcms/internal/middleware"
	"github.com/homemadechefs/chefcms/internal/ratelimit"
)

// SetupRoutes configures all routes for the application
func SetupRoutes(app *fiber.App, handlers *Handlers, limiter ratelimit.Limiter) {
	// API group with versioning
	api := app.Group("/api/v1")

	api.Get("/health", handlers.HealthCheck)

	// Public content endpoints
	content := api.Group("/content")
	{
		content.Get("", handlers.ListContent)
		content.Get("/:slug", handlers.GetContentBySlug)
	}

	// Newsletter endpoints
	news := api.Group("/newsletter")
	{
		news.Post("/subscribe", middleware.RateLimit(limiter), handlers.Subscribe)
		news.Post("/weekly-digest", middleware.AdminOnly(handlers.config.AdminAPIKey), handlers.SendWeeklyDigest)
	}

	// Admin endpoints
	admin := api.Group("/admin", middleware.AdminOnly(handlers.config.AdminAPIKey))
	{
		admin.Post("/content", handlers.CreateContent)
		admin.Put("/content/:id", handlers.UpdateContent)
		admin.Delete("/content/:id", handlers.DeleteContent)
		admin.Post("/content/:id/translate", handlers.TranslateContent)
		admin.Post("/media", handlers.UploadMedia)
	}

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
