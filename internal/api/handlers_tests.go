package api

import (
	"strings"

	"github.com/ZenithX9271/SPL-AgriSense/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListTests(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	tests, err := handler.repositories.SoilTests.ListByOwner(user.Credential)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load soil tests")
	}
	return c.JSON(fiber.Map{"tests": tests, "count": len(tests)})
}

// RunTest simulates one device measurement at the requested field location
// and stores it for the session owner.
func (handler *Handler) RunTest(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input runTestInput
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	locationName := strings.TrimSpace(input.LocationName)
	if locationName == "" {
		// The device stays where it last measured; brand new accounts start
		// at the demo field.
		locationName = services.DefaultTestLocation
		if latest, err := handler.repositories.SoilTests.ListByOwner(user.Credential); err == nil && len(latest) > 0 {
			locationName = latest[0].LocationName
		}
	}

	test := handler.simulator.Simulate(user.Credential, user.Name, locationName)
	if err := handler.repositories.SoilTests.Create(&test); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to store soil test")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"test": test})
}

func (handler *Handler) DeleteTest(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	deleted, err := handler.repositories.SoilTests.DeleteByIDForOwner(c.Params("id"), user.Credential)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete soil test")
	}
	if !deleted {
		return apiError(c, fiber.StatusNotFound, "soil test not found")
	}
	return c.JSON(fiber.Map{"ok": true})
}
