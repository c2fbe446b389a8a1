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

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

const nominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// Geocoder resolves free-text place names to coordinates through the public
// Nominatim endpoint. Results are memoized for the process lifetime; the demo
// only ever looks up a handful of Indian cities.
type Geocoder struct {
	client  *http.Client
	baseURL string

	mu    sync.Mutex
	cache map[string]Coordinates
}

func NewGeocoder() *Geocoder {
	return &Geocoder{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: nominatimBaseURL,
		cache:   map[string]Coordinates{},
	}
}

// Locate resolves place to coordinates. The bool reports whether the place
// could be resolved; lookup errors are folded into a negative result so
// callers can fall back to stored coordinates.
func (g *Geocoder) Locate(ctx context.Context, place string) (Coordinates, bool) {
	g.mu.Lock()
	if coords, ok := g.cache[place]; ok {
		g.mu.Unlock()
		return coords, true
	}
	g.mu.Unlock()

	coords, err := g.lookup(ctx, place)
	if err != nil {
		return Coordinates{}, false
	}

	g.mu.Lock()
	g.cache[place] = coords
	g.mu.Unlock()
	return coords, true
}

func (g *Geocoder) lookup(ctx context.Context, place string) (Coordinates, error) {
	query := url.Values{}
	query.Set("q", place)
	query.Set("format", "json")
	query.Set("limit", "1")
	query.Set("countrycodes", "in")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return Coordinates{}, err
	}
	// Nominatim's usage policy rejects requests without an identifying agent.
	req.Header.Set("User-Agent", "agrisense-dashboard/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return Coordinates{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("geocoder: unexpected status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Coordinates{}, err
	}
	if len(results) == 0 {
		return Coordinates{}, fmt.Errorf("geocoder: no match for %q", place)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinates{}, err
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinates{}, err
	}
	return Coordinates{Latitude: lat, Longitude: lon}, nil
}
