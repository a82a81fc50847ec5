package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/homemadechefs/chefcms/internal/logger"
	"github.com/homemadechefs/chefcms/internal/models"
	"github.com/homemadechefs/chefcms/internal/repository"
	"github.com/homemadechefs/chefcms/internal/translate"
)

type translateRequest struct {
	TargetLang string   `json:"target_lang" validate:"required,oneof=nl fr"`
	Fields     []string `json:"fields"`
}

// TranslateContent handles POST /admin/content/:id/translate. It translates
// the requested fields of one canonical item and returns the results to the
// editor without writing anything; saving is the editor's next action.
// Unlike the batch pipeline this is a single-item operation, so the first
// failure is propagated to the caller.
func (h *Handlers) TranslateContent(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid content ID",
		})
	}

	var req translateRequest
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
	target := models.Language(req.TargetLang)

	fields := translate.DefaultFields()
	if len(req.Fields) > 0 {
		fields, err = translate.FieldsByName(req.Fields)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	item, err := h.content.GetByID(c.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Post not found",
		})
	}
	if err != nil {
		logger.Get().Error().Err(err).Int64("id", id).Msg("Error fetching content")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch content",
		})
	}
	if !item.IsCanonical() || item.Language != models.CanonicalLanguage {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only canonical English content can be translated",
		})
	}

	translations := make(map[string]string)
	for _, field := range fields {
		text := field.Get(item)
		if text == "" {
			continue
		}

		logger.Get().Info().
			Str("field", field.Name).
			Str("target", req.TargetLang).
			Int64("id", id).
			Msg("Translating field")

		translated, err := h.translator.Translate(c.Context(), text, target)
		if err != nil {
			logger.Get().Error().
				Err(err).
				Str("field", field.Name).
				Int64("id", id).
				Msg("Translation failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Translation failed",
			})
		}
		translations[field.Name] = translated
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"translations": translations,
		"target_lang":  req.TargetLang,
	})
}
