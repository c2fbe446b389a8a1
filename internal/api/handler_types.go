package api

import (
	"time"

	"github.com/ZenithX9271/SPL-AgriSense/internal/db"
	"github.com/ZenithX9271/SPL-AgriSense/internal/i18n"
	"github.com/ZenithX9271/SPL-AgriSense/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager

	repositories *db.Repositories
	auth         *services.AuthService
	signup       *services.SignupFlow
	simulator    *services.Simulator
	advisory     *services.AdvisoryService
	dispatcher   *services.NotificationDispatcher
	weather      *services.WeatherService
	geocoder     *services.Geocoder
}

const defaultAuthTokenTTL = 7 * 24 * time.Hour

type signupStartInput struct {
	Name       string `json:"name" form:"name"`
	Credential string `json:"credential" form:"credential"`
}

type signupVerifyInput struct {
	Token    string `json:"signup_token" form:"signup_token"`
	OTP      string `json:"otp" form:"otp"`
	Password string `json:"password" form:"password"`
}

type loginInput struct {
	Credential string `json:"credential" form:"credential"`
	Password   string `json:"password" form:"password"`
}

type runTestInput struct {
	LocationName string `json:"location_name" form:"location_name"`
}

type askInput struct {
	Question string `json:"question" form:"question"`
}

type notificationsInput struct {
	Enabled bool `json:"enable_fertilizer_notifications" form:"enable_fertilizer_notifications"`
}
