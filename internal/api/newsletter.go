package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/homemadechefs/chefcms/internal/logger"
)

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Subscribe handles POST /newsletter/subscribe. Subscribing an already
// registered address returns success without side effects.
func (h *Handlers) Subscribe(c *fiber.Ctx) error {
	var req subscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid email address",
		})
	}

	result, err := h.newsletter.Subscribe(c.Context(), req.Email)
	if err != nil {
		logger.Get().Error().Err(err).Str("email", req.Email).Msg("Subscribe failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to subscribe",
		})
	}

	if result.AlreadySubscribed {
		return c.JSON(fiber.Map{"message": "Already subscribed!"})
	}
	return c.JSON(fiber.Map{"message": "Successfully subscribed! Check your email."})
}

// SendWeeklyDigest handles POST /newsletter/weekly-digest. Triggered by a
// scheduler; always completes the full subscriber iteration and reports
// aggregate counts.
func (h *Handlers) SendWeeklyDigest(c *fiber.Ctx) error {
	stats, err := h.newsletter.SendWeeklyDigest(c.Context())
	if err != nil {
		logger.Get().Error().Err(err).Msg("Weekly digest run failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send weekly digest",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Weekly newsletter sent",
		"stats":   stats,
	})
}
