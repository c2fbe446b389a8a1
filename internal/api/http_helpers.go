package api

import (
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func translateMessage(messages map[string]string, key string) string {
	if messages == nil {
		return key
	}
	if value, ok := messages[key]; ok && value != "" {
		return value
	}
	return key
}
