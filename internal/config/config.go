package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBPath          string
	SecretKey       string
	Timezone        string
	DefaultLanguage string
	CookieSecure    bool

	// Collaborator credentials. Every one of these may be empty: the
	// application degrades to fallback behavior instead of failing.
	SendGridAPIKey    string
	OTPSenderEmail    string
	PartnerEmail      string
	PartnerTemplateID string
	GeminiAPIKey      string
	GeminiModel       string
	TranslateURL      string
}

// Load reads configuration from the environment, with .env as a convenience
// for local development. Missing .env is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "data/agrisense.db"),
		SecretKey:       getEnv("SECRET_KEY", "change_me_in_production"),
		Timezone:        getEnv("TZ", "Asia/Kolkata"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		CookieSecure:    strings.EqualFold(getEnv("COOKIE_SECURE", "false"), "true"),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		OTPSenderEmail:    getEnv("OTP_SENDER_EMAIL", "noreply@agrisense.local"),
		PartnerEmail:      getEnv("PARTNER_EMAIL", "shash9271@gmail.com"),
		PartnerTemplateID: getEnv("PARTNER_TEMPLATE_ID", "d-ee7654e7d78f4b38b419da9edb172a48"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		TranslateURL:      getEnv("TRANSLATE_URL", ""),
	}
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
