package api

import (
	"errors"

	"github.com/ZenithX9271/SPL-AgriSense/internal/services"
	"github.com/gofiber/fiber/v2"
)

// NotifyPartner forwards one soil test to the fertilizer partner. The user
// must have opted in on their profile first.
func (handler *Handler) NotifyPartner(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if !user.NotificationsEnabled {
		return apiError(c, fiber.StatusForbidden, "fertilizer notifications are disabled for this account")
	}

	test, found, err := handler.repositories.SoilTests.FindByIDForOwner(c.Params("id"), user.Credential)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load soil test")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "soil test not found")
	}

	if err := handler.dispatcher.NotifyPartner(c.UserContext(), user, test); err != nil {
		if errors.Is(err, services.ErrPartnerChannelDisabled) {
			return apiError(c, fiber.StatusServiceUnavailable, "partner notification channel is not configured")
		}
		return apiError(c, fiber.StatusBadGateway, "failed to deliver the partner notification")
	}
	return c.JSON(fiber.Map{"ok": true})
}
