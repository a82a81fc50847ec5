package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/homemadechefs/chefcms/internal/logger"
)

// maxUploadSize caps hero-image uploads at 10MB.
const maxUploadSize = 10 << 20

// UploadMedia handles POST /admin/media (multipart form, field "file").
func (h *Handlers) UploadMedia(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing file",
		})
	}
	if fileHeader.Size > maxUploadSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "File too large",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to read file",
		})
	}
	defer file.Close()

	url, err := h.media.Upload(c.Context(), fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		logger.Get().Error().Err(err).Str("filename", fileHeader.Filename).Msg("Media upload failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload media",
		})
	}

	return c.JSON(fiber.Map{"url": url})
}
