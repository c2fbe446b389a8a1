package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

const openMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

// HourlySeries is a hourly weather forecast window.
type HourlySeries struct {
	Times         []string
	TemperatureC  []float64
	RainMM        []float64
}

// MeanTemperature averages the temperature series. The bool is false when the
// series is empty.
func (s HourlySeries) MeanTemperature() (float64, bool) {
	if len(s.TemperatureC) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range s.TemperatureC {
		sum += v
	}
	return sum / float64(len(s.TemperatureC)), true
}

// MaxRain returns the peak hourly rainfall in the series. The bool is false
// when the series is empty.
func (s HourlySeries) MaxRain() (float64, bool) {
	if len(s.RainMM) == 0 {
		return 0, false
	}
	max := s.RainMM[0]
	for _, v := range s.RainMM[1:] {
		if v > max {
			max = v
		}
	}
	return max, true
}

// WeatherService fetches hourly forecasts from Open-Meteo. Responses are
// memoized per rounded coordinate pair so repeated advisory runs for the same
// field do not hammer the API.
type WeatherService struct {
	client  *http.Client
	baseURL string

	mu    sync.Mutex
	cache map[string]HourlySeries
}

func NewWeatherService() *WeatherService {
	return &WeatherService{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: openMeteoBaseURL,
		cache:   map[string]HourlySeries{},
	}
}

// Forecast returns the hourly temperature and rain series for the point.
// date is an optional ISO day (YYYY-MM-DD); empty means the provider's
// default window starting today.
func (w *WeatherService) Forecast(ctx context.Context, coords Coordinates, date string) (HourlySeries, error) {
	key := fmt.Sprintf("%.2f,%.2f,%s", coords.Latitude, coords.Longitude, date)

	w.mu.Lock()
	if series, ok := w.cache[key]; ok {
		w.mu.Unlock()
		return series, nil
	}
	w.mu.Unlock()

	series, err := w.fetch(ctx, coords, date)
	if err != nil {
		return HourlySeries{}, err
	}

	w.mu.Lock()
	w.cache[key] = series
	w.mu.Unlock()
	return series, nil
}

func (w *WeatherService) fetch(ctx context.Context, coords Coordinates, date string) (HourlySeries, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', 4, 64))
	query.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', 4, 64))
	query.Set("hourly", "temperature_2m,rain")
	if date != "" {
		query.Set("start_date", date)
		query.Set("end_date", date)
	} else {
		query.Set("forecast_days", "1")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return HourlySeries{}, err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return HourlySeries{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return HourlySeries{}, fmt.Errorf("weather: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Hourly struct {
			Time          []string  `json:"time"`
			Temperature2M []float64 `json:"temperature_2m"`
			Rain          []float64 `json:"rain"`
		} `json:"hourly"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return HourlySeries{}, err
	}

	return HourlySeries{
		Times:        payload.Hourly.Time,
		TemperatureC: payload.Hourly.Temperature2M,
		RainMM:       payload.Hourly.Rain,
	}, nil
}
