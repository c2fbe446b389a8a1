package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Weather reports the hourly forecast for a named place on a given day
// (today when omitted).
func (handler *Handler) Weather(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if handler.weather == nil || handler.geocoder == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "weather service is not configured")
	}

	place := strings.TrimSpace(c.Query("place"))
	if place == "" {
		return apiError(c, fiber.StatusBadRequest, "a place is required")
	}

	date := strings.TrimSpace(c.Query("date"))
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return apiError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
	}

	coords, ok := handler.geocoder.Locate(c.UserContext(), place)
	if !ok {
		return apiError(c, fiber.StatusNotFound, "could not resolve the location")
	}

	series, err := handler.weather.Forecast(c.UserContext(), coords, date)
	if err != nil {
		return apiError(c, fiber.StatusBadGateway, "weather service unavailable")
	}

	response := fiber.Map{
		"place":     place,
		"latitude":  coords.Latitude,
		"longitude": coords.Longitude,
		"hourly": fiber.Map{
			"time":           series.Times,
			"temperature_2m": series.TemperatureC,
			"rain":           series.RainMM,
		},
	}
	if mean, ok := series.MeanTemperature(); ok {
		response["mean_temperature"] = mean
	}
	if rain, ok := series.MaxRain(); ok {
		response["max_rain"] = rain
	}
	return c.JSON(response)
}
