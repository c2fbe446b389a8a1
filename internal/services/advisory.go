package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZenithX9271/SPL-AgriSense/internal/models"
)

// Canned responses used when no LLM is configured, so the dashboard stays
// demonstrable without API keys.
const (
	fallbackFertilizerAdvice = "Mock Response (N/A Key): Analyze your data. Apply a high-Nitrogen fertilizer (20:10:10 NPK) to boost growth, avoiding heavy rains this week."
	fallbackCropAdvice       = "Mock Response (N/A Key): Based on the NPK values, the ideal starter crop is **Mustard (Rabi)**. Focus on balancing Phosphorus initially."
	fallbackChatReply        = "Sorry, the LLM service is currently unavailable. Please check the API keys."
)

// AdvisoryService orchestrates soil data, weather, the LLM and the
// translator to produce farmer-facing recommendations. Every collaborator
// except the soil test itself is optional; the service degrades rather than
// fails.
type AdvisoryService struct {
	llm        LLMClient
	weather    *WeatherService
	geocoder   *Geocoder
	translator Translator
}

func NewAdvisoryService(llm LLMClient, weather *WeatherService, geocoder *Geocoder, translator Translator) *AdvisoryService {
	return &AdvisoryService{llm: llm, weather: weather, geocoder: geocoder, translator: translator}
}

// Advise produces a fertilizer or crop-selection recommendation for the
// test, translated into lang when a translator is available.
func (a *AdvisoryService) Advise(ctx context.Context, test models.SoilTest, lang string) string {
	meanTemp, maxRain := a.weatherSummary(ctx, test)

	var answer string
	if a.llm == nil {
		if test.CropPresent() {
			answer = fallbackFertilizerAdvice
		} else {
			answer = fallbackCropAdvice
		}
	} else {
		prompt := buildAdvisoryPrompt(test, meanTemp, maxRain)
		generated, err := a.llm.Generate(ctx, prompt)
		if err != nil {
			return fmt.Sprintf("LLM Run Failed. Error: %v", err)
		}
		answer = generated
	}

	return a.localize(ctx, answer, lang)
}

// Ask answers a free-form question grounded in the user's latest soil test.
func (a *AdvisoryService) Ask(ctx context.Context, question string, latest *models.SoilTest, lang string) string {
	if a.llm == nil {
		return a.localize(ctx, fallbackChatReply, lang)
	}

	prompt := buildChatPrompt(question, latest)
	answer, err := a.llm.Generate(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("LLM Run Failed. Error: %v", err)
	}
	return a.localize(ctx, answer, lang)
}

// weatherSummary returns formatted mean temperature and peak rain for the
// test's field, or "N/A" when the forecast is unavailable.
func (a *AdvisoryService) weatherSummary(ctx context.Context, test models.SoilTest) (meanTemp, maxRain string) {
	meanTemp, maxRain = "N/A", "N/A"
	if a.weather == nil {
		return
	}

	coords := Coordinates{Latitude: test.Latitude, Longitude: test.Longitude}
	if a.geocoder != nil {
		if resolved, ok := a.geocoder.Locate(ctx, test.LocationName); ok {
			coords = resolved
		}
	}

	series, err := a.weather.Forecast(ctx, coords, "")
	if err != nil {
		return
	}
	if mean, ok := series.MeanTemperature(); ok {
		meanTemp = fmt.Sprintf("%.1f°C", mean)
	}
	if rain, ok := series.MaxRain(); ok {
		maxRain = fmt.Sprintf("%.1f mm", rain)
	}
	return
}

func (a *AdvisoryService) localize(ctx context.Context, text string, lang string) string {
	if a.translator == nil || lang == "" || lang == "en" {
		return text
	}
	translated, err := a.translator.Translate(ctx, text, lang)
	if err != nil || translated == "" {
		return text
	}
	return translated
}

// buildAdvisoryPrompt asks for a fertilizer plan when a crop is growing and
// a starter crop recommendation otherwise.
func buildAdvisoryPrompt(test models.SoilTest, meanTemp string, maxRain string) string {
	var b strings.Builder
	b.WriteString("You are an agronomy advisor for smallholder farmers in India. Answer in short, practical bullet points.\n\n")
	b.WriteString("Soil test results:\n")
	fmt.Fprintf(&b, "- Location: %s (%.4f, %.4f)\n", test.LocationName, test.Latitude, test.Longitude)
	fmt.Fprintf(&b, "- Nitrogen: %d ppm, Phosphorus: %d ppm, Potassium: %d ppm\n", test.NitrogenPPM, test.PhosphorusPPM, test.PotassiumPPM)
	fmt.Fprintf(&b, "- pH: %.1f, EC: %.2f mS/cm\n", test.PHValue, test.ECmScm)
	fmt.Fprintf(&b, "- Texture: %.2f%% organic matter, %.2f%% clay, %.2f%% silt, %.2f%% sand\n", test.OrganicMatterPct, test.ClayPct, test.SiltPct, test.SandPct)
	fmt.Fprintf(&b, "- Forecast: mean temperature %s, peak hourly rain %s\n\n", meanTemp, maxRain)

	if test.CropPresent() {
		fmt.Fprintf(&b, "The field currently grows %s with a health index of %.2f. ", test.CropDetected, test.CropHealthIndex)
		b.WriteString("Recommend a fertilizer plan (NPK ratio, dosage and timing) for this crop, accounting for the forecast.")
	} else {
		b.WriteString("No crop is currently detected on this field. Recommend the best starter crop for these soil values and the coming weather, and the first soil amendment to apply.")
	}
	return b.String()
}

func buildChatPrompt(question string, latest *models.SoilTest) string {
	var b strings.Builder
	b.WriteString("You are an agronomy advisor for smallholder farmers in India. Answer briefly and practically.\n\n")
	if latest != nil {
		b.WriteString("The farmer's most recent soil test:\n")
		fmt.Fprintf(&b, "- Location: %s\n", latest.LocationName)
		fmt.Fprintf(&b, "- Nitrogen: %d ppm, Phosphorus: %d ppm, Potassium: %d ppm\n", latest.NitrogenPPM, latest.PhosphorusPPM, latest.PotassiumPPM)
		fmt.Fprintf(&b, "- pH: %.1f, EC: %.2f mS/cm\n", latest.PHValue, latest.ECmScm)
		fmt.Fprintf(&b, "- Crop detected: %s\n\n", latest.CropDetected)
	}
	fmt.Fprintf(&b, "Question: %s", question)
	return b.String()
}
