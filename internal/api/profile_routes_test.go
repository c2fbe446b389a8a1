package api

import (
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestProfileHidesPasswordHash(t *testing.T) {
	sender := &capturingOTPSender{}
	app := newTestApp(t, Collaborators{OTPMailer: sender})
	cookie := signupAndLogin(t, app, sender, "asha@example.com")

	body := decodeJSON(t, performJSON(t, app, fiber.MethodGet, "/api/profile", nil, cookie))
	user, _ := body["user"].(map[string]any)
	if user["contact_or_email"] != "asha@example.com" {
		t.Fatalf("unexpected credential %v", user["contact_or_email"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatal("the password hash must never be serialized")
	}
	if count, _ := body["test_count"].(float64); count != 2 {
		t.Fatalf("expected 2 bootstrap records in the profile, got %v", body["test_count"])
	}
}

func TestNotificationToggleRoundTrips(t *testing.T) {
	sender := &capturingOTPSender{}
	app := newTestApp(t, Collaborators{OTPMailer: sender})
	cookie := signupAndLogin(t, app, sender, "asha@example.com")

	body := decodeJSON(t, performJSON(t, app, fiber.MethodGet, "/api/profile", nil, cookie))
	user, _ := body["user"].(map[string]any)
	if enabled, _ := user["enable_fertilizer_notifications"].(bool); enabled {
		t.Fatal("accounts must start with notifications disabled")
	}

	response := performJSON(t, app, fiber.MethodPost, "/api/profile/notifications", map[string]bool{
		"enable_fertilizer_notifications": true,
	}, cookie)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("toggle: unexpected status %d", response.StatusCode)
	}

	body = decodeJSON(t, performJSON(t, app, fiber.MethodGet, "/api/profile", nil, cookie))
	user, _ = body["user"].(map[string]any)
	if enabled, _ := user["enable_fertilizer_notifications"].(bool); !enabled {
		t.Fatal("expected the opt-in to persist")
	}
}
