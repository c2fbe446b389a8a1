package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AdviseTest produces a fertilizer or crop recommendation for one stored
// soil test, in the session language.
func (handler *Handler) AdviseTest(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	test, found, err := handler.repositories.SoilTests.FindByIDForOwner(c.Params("id"), user.Credential)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load soil test")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "soil test not found")
	}

	advice := handler.advisory.Advise(c.UserContext(), test, currentLanguage(c))
	return c.JSON(fiber.Map{
		"test_id": test.ID,
		"advice":  advice,
	})
}

// AskTest answers a free-form follow-up question against one stored soil
// test.
func (handler *Handler) AskTest(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input askInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return apiError(c, fiber.StatusBadRequest, "a question is required")
	}

	test, found, err := handler.repositories.SoilTests.FindByIDForOwner(c.Params("id"), user.Credential)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load soil test")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "soil test not found")
	}

	answer := handler.advisory.Ask(c.UserContext(), question, &test, currentLanguage(c))
	return c.JSON(fiber.Map{
		"test_id": test.ID,
		"answer":  answer,
	})
}
