package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/homemadechefs/chefcms/internal/logger"
	"github.com/homemadechefs/chefcms/internal/models"
	"github.com/homemadechefs/chefcms/internal/repository"
)

type contentRequest struct {
	Kind            string     `json:"kind" validate:"required,oneof=blog learning"`
	Slug            string     `json:"slug" validate:"required"`
	Language        string     `json:"language" validate:"required,oneof=en nl fr"`
	Title           string     `json:"title" validate:"required"`
	Excerpt         string     `json:"excerpt"`
	Body            string     `json:"body"`
	HeroImage       *string    `json:"hero_image"`
	MetaTitle       *string    `json:"meta_title"`
	MetaDescription *string    `json:"meta_description"`
	Category        string     `json:"category"`
	Tags            []string   `json:"tags"`
	AuthorName      string     `json:"author_name"`
	IsPublished     bool       `json:"is_published"`
	PublishedAt     *time.Time `json:"published_at"`
	SourceID        *int64     `json:"source_id"`
}

// ListContent handles GET /content
func (h *Handlers) ListContent(c *fiber.Ctx) error {
	lang, err := models.ParseLanguage(c.Query("lang", string(models.CanonicalLanguage)))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	switch {
	case pageSize > 100:
		pageSize = 100
	case pageSize <= 0:
		pageSize = 20
	}

	items, err := h.content.ListPublished(c.Context(), lang, pageSize, (page-1)*pageSize)
	if err != nil {
		logger.Get().Error().Err(err).Msg("Error listing content")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list content",
		})
	}

	return c.JSON(fiber.Map{
		"page":      page,
		"page_size": pageSize,
		"total":     len(items),
		"items":     items,
	})
}

// GetContentBySlug handles GET /content/:slug
func (h *Handlers) GetContentBySlug(c *fiber.Ctx) error {
	lang, err := models.ParseLanguage(c.Query("lang", string(models.CanonicalLanguage)))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	item, err := h.content.GetBySlug(c.Context(), c.Params("slug"), lang)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Content not found",
		})
	}
	if err != nil {
		logger.Get().Error().Err(err).Str("slug", c.Params("slug")).Msg("Error getting content")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get content",
		})
	}
	if !item.IsPublished {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Content not found",
		})
	}

	return c.JSON(item)
}

// CreateContent handles POST /admin/content
func (h *Handlers) CreateContent(c *fiber.Ctx) error {
	var req contentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	item := req.toModel()
	if item.SourceID != nil {
		source, err := h.content.GetByID(c.Context(), *item.SourceID)
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Source content not found",
			})
		}
		if err != nil {
			logger.Get().Error().Err(err).Int64("source_id", *item.SourceID).Msg("Error checking source content")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create content",
			})
		}
		// Translations always hang off a canonical item, never off
		// another translation.
		if !source.IsCanonical() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "source_id must reference canonical English content",
			})
		}
	}
	if err := h.content.Create(c.Context(), item); err != nil {
		logger.Get().Error().Err(err).Str("slug", item.Slug).Msg("Error creating content")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create content",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateContent handles PUT /admin/content/:id
func (h *Handlers) UpdateContent(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid content ID",
		})
	}

	var req contentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	item := req.toModel()
	item.ID = id
	if err := h.content.Update(c.Context(), item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Content not found",
			})
		}
		logger.Get().Error().Err(err).Int64("id", id).Msg("Error updating content")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update content",
		})
	}

	return c.JSON(item)
}

// DeleteContent handles DELETE /admin/content/:id. Translations of a
// deleted canonical item are left in place.
func (h *Handlers) DeleteContent(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid content ID",
		})
	}

	if err := h.content.Delete(c.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Content not found",
			})
		}
		logger.Get().Error().Err(err).Int64("id", id).Msg("Error deleting content")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete content",
		})
	}

	return c.JSON(fiber.Map{"message": "Content deleted"})
}

func (r *contentRequest) toModel() *models.ContentItem {
	return &models.ContentItem{
		Kind:            models.ContentKind(r.Kind),
		Slug:            r.Slug,
		Language:        models.Language(r.Language),
		Title:           r.Title,
		Excerpt:         r.Excerpt,
		Body:            r.Body,
		HeroImage:       r.HeroImage,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		Category:        r.Category,
		Tags:            r.Tags,
		AuthorName:      r.AuthorName,
		IsPublished:     r.IsPublished,
		PublishedAt:     r.PublishedAt,
		SourceID:        r.SourceID,
	}
}
