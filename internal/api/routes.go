package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)

	api := app.Group("/api")
	api.Get("/languages", handler.Languages)

	auth := api.Group("/auth")
	auth.Post("/signup/start", handler.SignupStart)
	auth.Post("/signup/verify", handler.SignupVerify)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	tests := api.Group("/tests", handler.AuthRequired)
	tests.Get("", handler.ListTests)
	tests.Post("/run", handler.RunTest)
	tests.Delete("/:id", handler.DeleteTest)
	tests.Post("/:id/advice", handler.AdviseTest)
	tests.Post("/:id/ask", handler.AskTest)
	tests.Post("/:id/notify", handler.NotifyPartner)

	api.Get("/weather", handler.AuthRequired, handler.Weather)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Post("/notifications", handler.UpdateNotifications)
}
