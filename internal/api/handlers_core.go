package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// SetLanguage pins the interface language via cookie and reports the active
// string table, so the client can re-render without a reload.
func (handler *Handler) SetLanguage(c *fiber.Ctx) error {
	language := handler.i18n.NormalizeLanguage(c.Params("lang"))
	handler.setLanguageCookie(c, language)
	return c.JSON(fiber.Map{
		"language": language,
		"messages": handler.i18n.Messages(language),
	})
}

func (handler *Handler) Languages(c *fiber.Ctx) error {
	supported := handler.i18n.SupportedLanguages()
	languages := make([]fiber.Map, 0, len(supported))
	for _, code := range supported {
		languages = append(languages, fiber.Map{
			"code":         code,
			"display_name": handler.i18n.DisplayName(code),
		})
	}
	return c.JSON(fiber.Map{
		"default":   handler.i18n.DefaultLanguage(),
		"current":   currentLanguage(c),
		"languages": languages,
	})
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
