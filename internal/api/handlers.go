package api

import (
	"context"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/homemadechefs/chefcms/internal/config"
	"github.com/homemadechefs/chefcms/internal/newsletter"
	"github.com/homemadechefs/chefcms/internal/repository"
	"github.com/homemadechefs/chefcms/internal/translate"
)

// MediaUploader stores an uploaded file and returns its public URL.
type MediaUploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

// Handlers carries the dependencies shared by all HTTP handlers. Clients
// are constructed once at startup and reused for every request.
type Handlers struct {
	config     *config.Config
	content    repository.ContentRepository
	newsletter *newsletter.Service
	translator translate.Translator
	media      MediaUploader
	validate   *validator.Validate
}

// NewHandlers creates the handler set
func NewHandlers(
	cfg *config.Config,
	content repository.ContentRepository,
	news *newsletter.Service,
	translator translate.Translator,
	media MediaUploader,
) *Handlers {
	return &Handlers{
		config:     cfg,
		content:    content,
		newsletter: news,
		translator: translator,
		media:      media,
		validate:   validator.New(),
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
