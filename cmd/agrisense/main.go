package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ZenithX9271/SPL-AgriSense/internal/api"
	"github.com/ZenithX9271/SPL-AgriSense/internal/cli"
	"github.com/ZenithX9271/SPL-AgriSense/internal/config"
	"github.com/ZenithX9271/SPL-AgriSense/internal/db"
	"github.com/ZenithX9271/SPL-AgriSense/internal/i18n"
	"github.com/ZenithX9271/SPL-AgriSense/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	resetCredential := flag.String("reset-password", "", "reset the password for the account with this email or phone, then exit")
	flag.Parse()

	cfg := config.Load()

	if *resetCredential != "" {
		if err := cli.RunResetPasswordCommand(cfg.DBPath, *resetCredential); err != nil {
			log.Fatalf("password reset failed: %v", err)
		}
		return
	}

	location := mustLoadLocation(cfg.Timezone)
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage, filepath.Join("internal", "i18n", "locales"))
	if err != nil {
		log.Fatalf("i18n init failed: %v", err)
	}

	handler := api.NewHandler(database, cfg.SecretKey, cfg.CookieSecure, location, i18nManager, buildCollaborators(cfg))

	app := fiber.New(fiber.Config{
		AppName:               "AgriSense",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("AgriSense listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// buildCollaborators wires the optional outward-facing services. Anything
// without credentials stays nil; the handlers degrade feature by feature.
func buildCollaborators(cfg *config.Config) api.Collaborators {
	collaborators := api.Collaborators{
		Weather:      services.NewWeatherService(),
		Geocoder:     services.NewGeocoder(),
		PartnerEmail: cfg.PartnerEmail,
	}

	if cfg.SendGridAPIKey != "" {
		mailer := services.NewSendGridMailer(cfg.SendGridAPIKey, cfg.OTPSenderEmail, cfg.PartnerTemplateID)
		collaborators.OTPMailer = mailer
		collaborators.PartnerMailer = mailer
	} else {
		log.Print("SENDGRID_API_KEY not set: OTP codes will be shown on screen, partner notifications disabled")
	}

	if cfg.GeminiAPIKey != "" {
		llm, err := services.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("gemini client init failed, falling back to canned advice: %v", err)
		} else {
			collaborators.LLM = llm
		}
	} else {
		log.Print("GEMINI_API_KEY not set: advisory endpoints will serve canned responses")
	}

	if cfg.TranslateURL != "" {
		collaborators.Translator = services.NewLibreTranslator(cfg.TranslateURL)
	}

	return collaborators
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
