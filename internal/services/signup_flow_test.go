package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ZenithX9271/SPL-AgriSense/internal/models"
	"github.com/ZenithX9271/SPL-AgriSense/internal/security"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (s *fakeUserStore) ExistsByCredential(credential string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[credential]
	return ok, nil
}

func (s *fakeUserStore) Create(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Credential]; ok {
		return errors.New("UNIQUE constraint failed: users.credential")
	}
	s.users[user.Credential] = user
	return nil
}

type fakeOTPSender struct {
	sent     []string
	lastCode string
	fail     bool
}

func (m *fakeOTPSender) SendOTP(_ context.Context, recipient string, code string) error {
	if m.fail {
		return errors.New("smtp relay down")
	}
	m.sent = append(m.sent, recipient)
	m.lastCode = code
	return nil
}

func TestSignupFlowHappyPathCreatesAccount(t *testing.T) {
	store := newFakeUserStore()
	mailer := &fakeOTPSender{}
	flow := NewSignupFlow(store, mailer)

	issue, err := flow.Start(context.Background(), "Asha", "asha@example.com")
	if err != nil {
		t.Fatalf("start signup: %v", err)
	}
	if !issue.Delivered {
		t.Fatal("expected OTP delivery via mailer")
	}
	if issue.DebugOTP != "" {
		t.Fatal("debug OTP must be withheld when delivery succeeds")
	}
	if stage, _ := flow.Stage(issue.Token); stage != StageAwaitingOTP {
		t.Fatalf("expected stage %q, got %q", StageAwaitingOTP, stage)
	}

	user, err := flow.Verify(issue.Token, mailer.lastCode, "gr0w-more-wheat")
	if err != nil {
		t.Fatalf("verify signup: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected a generated user id")
	}
	if user.Credential != "asha@example.com" {
		t.Fatalf("unexpected credential %q", user.Credential)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("gr0w-more-wheat")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if exists, _ := store.ExistsByCredential("asha@example.com"); !exists {
		t.Fatal("expected the account to be persisted")
	}
}

func TestSignupFlowWrongOTPLeavesNoAccount(t *testing.T) {
	store := newFakeUserStore()
	flow := NewSignupFlow(store, &fakeOTPSender{})

	issue, err := flow.Start(context.Background(), "Asha", "asha@example.com")
	if err != nil {
		t.Fatalf("start signup: %v", err)
	}

	if _, err := flow.Verify(issue.Token, "000000", "password"); !errors.Is(err, ErrOTPMismatch) {
		t.Fatalf("expected ErrOTPMismatch, got %v", err)
	}
	if exists, _ := store.ExistsByCredential("asha@example.com"); exists {
		t.Fatal("no account may exist after a failed verification")
	}
	// The attempt remains open for a retry with the right code.
	if stage, ok := flow.Stage(issue.Token); !ok || stage != StageAwaitingOTP {
		t.Fatalf("expected pending signup to survive a wrong code, stage=%q ok=%v", stage, ok)
	}
}

func TestSignupFlowRejectsTakenCredential(t *testing.T) {
	store := newFakeUserStore()
	store.users["asha@example.com"] = &models.User{Credential: "asha@example.com"}
	flow := NewSignupFlow(store, &fakeOTPSender{})

	if _, err := flow.Start(context.Background(), "Asha", "asha@example.com"); !errors.Is(err, ErrCredentialTaken) {
		t.Fatalf("expected ErrCredentialTaken, got %v", err)
	}
}

func TestSignupFlowExposesOTPWhenDeliveryFails(t *testing.T) {
	flow := NewSignupFlow(newFakeUserStore(), &fakeOTPSender{fail: true})

	issue, err := flow.Start(context.Background(), "Asha", "asha@example.com")
	if err != nil {
		t.Fatalf("start signup: %v", err)
	}
	if issue.Delivered {
		t.Fatal("delivery must be reported as failed")
	}
	if len(issue.DebugOTP) != security.OTPLength {
		t.Fatalf("expected a %d-digit debug OTP, got %q", security.OTPLength, issue.DebugOTP)
	}
}

func TestSignupFlowPhoneCredentialSkipsMail(t *testing.T) {
	mailer := &fakeOTPSender{}
	flow := NewSignupFlow(newFakeUserStore(), mailer)

	issue, err := flow.Start(context.Background(), "Asha", "+91 98765 43210")
	if err != nil {
		t.Fatalf("start signup: %v", err)
	}
	if issue.Delivered {
		t.Fatal("phone credentials have no mail channel")
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("no mail may be sent for a phone credential, sent=%v", mailer.sent)
	}
	if issue.DebugOTP == "" {
		t.Fatal("expected the OTP surfaced for on-screen display")
	}
}

func TestSignupFlowOTPExpires(t *testing.T) {
	current := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	flow := NewSignupFlow(newFakeUserStore(), &fakeOTPSender{})
	flow.now = func() time.Time { return current }

	issue, err := flow.Start(context.Background(), "Asha", "asha@example.com")
	if err != nil {
		t.Fatalf("start signup: %v", err)
	}

	current = current.Add(otpValidity + time.Second)
	if _, err := flow.Verify(issue.Token, "123456", "password"); !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}
	if _, ok := flow.Stage(issue.Token); ok {
		t.Fatal("expired attempts must be discarded")
	}
}

func TestSignupFlowUnknownTokenIsRejected(t *testing.T) {
	flow := NewSignupFlow(newFakeUserStore(), &fakeOTPSender{})

	if _, err := flow.Verify("no-such-token", "123456", "password"); !errors.Is(err, ErrSignupNotFound) {
		t.Fatalf("expected ErrSignupNotFound, got %v", err)
	}
}

func TestSignupFlowRequiresPassword(t *testing.T) {
	mailer := &fakeOTPSender{}
	flow := NewSignupFlow(newFakeUserStore(), mailer)

	issue, err := flow.Start(context.Background(), "Asha", "asha@example.com")
	if err != nil {
		t.Fatalf("start signup: %v", err)
	}
	if _, err := flow.Verify(issue.Token, mailer.lastCode, "   "); !errors.Is(err, ErrPasswordMissing) {
		t.Fatalf("expected ErrPasswordMissing, got %v", err)
	}
}

func TestSignupFlowValidatesIdentity(t *testing.T) {
	flow := NewSignupFlow(newFakeUserStore(), &fakeOTPSender{})

	cases := []struct {
		name       string
		fullName   string
		credential string
		wantErr    error
	}{
		{"missing name", "  ", "asha@example.com", ErrIdentityIncomplete},
		{"missing credential", "Asha", "", ErrIdentityIncomplete},
		{"malformed email", "Asha", "not-an-email@", ErrCredentialInvalid},
		{"short phone", "Asha", "12345", ErrCredentialInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := flow.Start(context.Background(), tc.fullName, tc.credential); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNormalizeCredentialLowercasesEmailAndCompactsPhone(t *testing.T) {
	email, err := NormalizeCredential("  Asha@Example.COM ")
	if err != nil {
		t.Fatalf("normalize email: %v", err)
	}
	if email != "asha@example.com" {
		t.Fatalf("unexpected normalized email %q", email)
	}

	phone, err := NormalizeCredential("+91 98765-43210")
	if err != nil {
		t.Fatalf("normalize phone: %v", err)
	}
	if strings.ContainsAny(phone, " -") {
		t.Fatalf("phone must be compacted, got %q", phone)
	}
}
