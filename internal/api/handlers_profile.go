package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	count, err := handler.repositories.SoilTests.CountByOwner(user.Credential)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	response := fiber.Map{
		"user":       user,
		"test_count": count,
	}
	if outcome, ok := handler.dispatcher.LastOutcome(user.ID); ok {
		response["last_partner_notification"] = outcome
	}
	return c.JSON(response)
}

// UpdateNotifications flips the fertilizer partner opt-in.
func (handler *Handler) UpdateNotifications(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input notificationsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.auth.SetNotificationsEnabled(user.ID, input.Enabled); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update notifications")
	}
	return c.JSON(fiber.Map{"enable_fertilizer_notifications": input.Enabled})
}
