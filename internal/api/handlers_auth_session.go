package api

import (
	"errors"
	"log"

	"github.com/ZenithX9271/SPL-AgriSense/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Login opens a session and tops the account up with demo soil tests so the
// dashboard never renders empty.
func (handler *Handler) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.auth.Authenticate(input.Credential, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}

	if _, err := services.EnsureDemoData(handler.repositories.SoilTests, handler.simulator, &user); err != nil {
		// Bootstrap data is a convenience; a failure must not block login.
		log.Printf("demo data bootstrap failed for %s: %v", user.ID, err)
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{"user": user})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}
