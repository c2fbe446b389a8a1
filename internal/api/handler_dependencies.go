package api

import (
	"time"

	"github.com/ZenithX9271/SPL-AgriSense/internal/db"
	"github.com/ZenithX9271/SPL-AgriSense/internal/i18n"
	"github.com/ZenithX9271/SPL-AgriSense/internal/services"
	"gorm.io/gorm"
)

// Collaborators carries the optional outward-facing services. Any nil field
// switches the corresponding feature into its degraded mode instead of
// disabling the dashboard.
type Collaborators struct {
	OTPMailer     services.OTPSender
	PartnerMailer services.PartnerMailer
	PartnerEmail  string
	LLM           services.LLMClient
	Translator    services.Translator
	Weather       *services.WeatherService
	Geocoder      *services.Geocoder
}

func NewHandler(database *gorm.DB, secretKey string, cookieSecure bool, location *time.Location, i18nManager *i18n.Manager, collaborators Collaborators) *Handler {
	handler := &Handler{
		db:           database,
		secretKey:    []byte(secretKey),
		location:     location,
		cookieSecure: cookieSecure,
		i18n:         i18nManager,
	}
	return handler.withDependencies(database, collaborators)
}

func (handler *Handler) withDependencies(database *gorm.DB, collaborators Collaborators) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.auth = services.NewAuthService(handler.repositories.Users)
	handler.signup = services.NewSignupFlow(handler.repositories.Users, collaborators.OTPMailer)
	handler.simulator = services.NewSimulator()
	handler.weather = collaborators.Weather
	handler.geocoder = collaborators.Geocoder
	handler.advisory = services.NewAdvisoryService(collaborators.LLM, collaborators.Weather, collaborators.Geocoder, collaborators.Translator)
	handler.dispatcher = services.NewNotificationDispatcher(collaborators.PartnerMailer, collaborators.PartnerEmail, handler.location)
	return handler
}
