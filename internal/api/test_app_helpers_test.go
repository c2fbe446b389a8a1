package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/ZenithX9271/SPL-AgriSense/internal/db"
	"github.com/ZenithX9271/SPL-AgriSense/internal/i18n"
	"github.com/ZenithX9271/SPL-AgriSense/internal/services"
	"github.com/gofiber/fiber/v2"
)

type capturingOTPSender struct {
	lastRecipient string
	lastCode      string
	fail          bool
}

func (s *capturingOTPSender) SendOTP(_ context.Context, recipient string, code string) error {
	if s.fail {
		return errors.New("mail relay down")
	}
	s.lastRecipient = recipient
	s.lastCode = code
	return nil
}

type capturingPartnerMailer struct {
	reports []services.PartnerReport
	fail    bool
}

func (m *capturingPartnerMailer) SendPartnerReport(_ context.Context, _ string, report services.PartnerReport) error {
	if m.fail {
		return errors.New("mail relay down")
	}
	m.reports = append(m.reports, report)
	return nil
}

type scriptedLLM struct {
	reply string
	err   error
}

func (s *scriptedLLM) Generate(context.Context, string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestApp(t *testing.T, collaborators Collaborators) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "agrisense-api.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("resolve test file path")
	}
	localesDir := filepath.Join(filepath.Dir(thisFile), "..", "i18n", "locales")
	manager, err := i18n.NewManager("en", localesDir)
	if err != nil {
		t.Fatalf("i18n init: %v", err)
	}

	handler := NewHandler(database, "test-secret-key", false, time.UTC, manager, collaborators)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	return app
}

func performJSON(t *testing.T, app *fiber.App, method string, path string, payload any, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		serialized, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(serialized)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return response
}

func decodeJSON(t *testing.T, response *http.Response) map[string]any {
	t.Helper()
	defer response.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return decoded
}

func authCookie(t *testing.T, response *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName {
			return cookie
		}
	}
	t.Fatal("expected the auth cookie to be set")
	return nil
}

// signupAndLogin walks the complete happy path and returns a session cookie.
func signupAndLogin(t *testing.T, app *fiber.App, sender *capturingOTPSender, credential string) *http.Cookie {
	t.Helper()

	startResponse := performJSON(t, app, fiber.MethodPost, "/api/auth/signup/start", map[string]string{
		"name":       "Asha",
		"credential": credential,
	})
	if startResponse.StatusCode != fiber.StatusOK {
		t.Fatalf("signup start: unexpected status %d", startResponse.StatusCode)
	}
	startBody := decodeJSON(t, startResponse)
	token, _ := startBody["signup_token"].(string)
	if token == "" {
		t.Fatal("expected a signup token")
	}

	code := sender.lastCode
	if code == "" {
		code, _ = startBody["debug_otp"].(string)
	}
	if code == "" {
		t.Fatal("no OTP available to complete signup")
	}

	verifyResponse := performJSON(t, app, fiber.MethodPost, "/api/auth/signup/verify", map[string]string{
		"signup_token": token,
		"otp":          code,
		"password":     "gr0w-more-wheat",
	})
	if verifyResponse.StatusCode != fiber.StatusCreated {
		t.Fatalf("signup verify: unexpected status %d", verifyResponse.StatusCode)
	}
	io.Copy(io.Discard, verifyResponse.Body)
	verifyResponse.Body.Close()

	loginResponse := performJSON(t, app, fiber.MethodPost, "/api/auth/login", map[string]string{
		"credential": credential,
		"password":   "gr0w-more-wheat",
	})
	if loginResponse.StatusCode != fiber.StatusOK {
		t.Fatalf("login: unexpected status %d", loginResponse.StatusCode)
	}
	cookie := authCookie(t, loginResponse)
	io.Copy(io.Discard, loginResponse.Body)
	loginResponse.Body.Close()
	return cookie
}
