package api

import (
	"github.com/ZenithX9271/SPL-AgriSense/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	authCookieName     = "agrisense_auth"
	languageCookieName = "agrisense_lang"
	contextUserKey     = "current_user"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, _ := c.Locals(contextMessagesKey).(map[string]string)
	return messages
}
