package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/homemadechefs/chefcms/internal/ai"
	"github.com/homemadechefs/chefcms/internal/api"
	"github.com/homemadechefs/chefcms/internal/config"
	"github.com/homemadechefs/chefcms/internal/database"
	"github.com/homemadechefs/chefcms/internal/email"
	"github.com/homemadechefs/chefcms/internal/logger"
	"github.com/homemadechefs/chefcms/internal/media"
	"github.com/homemadechefs/chefcms/internal/middleware"
	"github.com/homemadechefs/chefcms/internal/newsletter"
	"github.com/homemadechefs/chefcms/internal/ratelimit"
	"github.com/homemadechefs/chefcms/internal/repository"
)

func main() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
		Pretty: cfg.Env == "development",
	})

	log := logger.Get()
	log.Info().Msg("Starting content service...")

	// Database
	db, err := database.New(cfg, *log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	repos := repository.New(db)

	// Rate limiter; falls back to in-memory when Redis is unreachable
	var limiter ratelimit.Limiter
	limiter, err = ratelimit.NewRedisLimiter(cfg.RedisURL, cfg.RedisPrefix, cfg.RateLimitWindow, cfg.RateLimitMax)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-memory rate limiter")
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitWindow, cfg.RateLimitMax)
	}
	defer limiter.Close()

	// External provider clients, constructed once and reused
	translator := ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
	sender := email.NewSendGridClient(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName)

	mediaStore, err := media.NewStore(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize media store")
	}

	news := newsletter.NewService(repos.Subscriber, repos.SentEmail, repos.Content, sender, cfg.SiteBaseURL)

	handlers := api.NewHandlers(cfg, repos.Content, news, translator, mediaStore)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	api.SetupRoutes(app, handlers, limiter)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
