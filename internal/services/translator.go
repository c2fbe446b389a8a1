package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Translator turns English advisory text into the user's language. A nil
// Translator (no endpoint configured) means text passes through unchanged.
type Translator interface {
	Translate(ctx context.Context, text string, targetLang string) (string, error)
}

// LibreTranslator calls a LibreTranslate-compatible endpoint.
type LibreTranslator struct {
	client  *http.Client
	baseURL string
}

func NewLibreTranslator(baseURL string) *LibreTranslator {
	return &LibreTranslator{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
	}
}

func (t *LibreTranslator) Translate(ctx context.Context, text string, targetLang string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"q":      text,
		"source": "en",
		"target": targetLang,
		"format": "text",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translator: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	return payload.TranslatedText, nil
}
