package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ZenithX9271/SPL-AgriSense/internal/models"
	"github.com/ZenithX9271/SPL-AgriSense/internal/security"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	StageCollectingIdentity = "collecting_identity"
	StageAwaitingOTP        = "awaiting_otp"
	StageCompleted          = "completed"

	// The OTP email copy promises a 5 minute validity window; the flow
	// enforces it.
	otpValidity = 5 * time.Minute
)

// PendingSignup is one in-progress signup attempt. It lives in memory only
// and is discarded on completion, expiry or restart.
type PendingSignup struct {
	Name       string
	Credential string
	OTPCode    string
	Stage      string
	IssuedAt   time.Time
}

type SignupUserRepository interface {
	ExistsByCredential(credential string) (bool, error)
	Create(user *models.User) error
}

// OTPSender delivers the verification code. A nil sender (no mail
// configuration) is a supported mode: the flow degrades to a debug-visible
// code instead of blocking.
type OTPSender interface {
	SendOTP(ctx context.Context, recipient string, code string) error
}

// OTPIssue reports the outcome of the stage-1 transition. DebugOTP is set
// only when delivery did not happen, so the demo stays usable offline.
type OTPIssue struct {
	Token     string
	Delivered bool
	DebugOTP  string
}

// SignupFlow is the 3-stage account creation state machine: collect identity,
// verify the one-time code, activate the account.
type SignupFlow struct {
	users  SignupUserRepository
	mailer OTPSender
	otpTTL time.Duration
	now    func() time.Time

	mu      sync.Mutex
	pending map[string]*PendingSignup
}

func NewSignupFlow(users SignupUserRepository, mailer OTPSender) *SignupFlow {
	return &SignupFlow{
		users:   users,
		mailer:  mailer,
		otpTTL:  otpValidity,
		now:     time.Now,
		pending: make(map[string]*PendingSignup),
	}
}

// Start validates the identity stage and, on success, issues a fresh 6-digit
// code and moves the attempt to awaiting_otp. Delivery failure is not a
// blocking error.
func (flow *SignupFlow) Start(ctx context.Context, nameRaw string, credentialRaw string) (OTPIssue, error) {
	name, credential, err := ValidateSignupIdentity(nameRaw, credentialRaw)
	if err != nil {
		return OTPIssue{}, err
	}

	exists, err := flow.users.ExistsByCredential(credential)
	if err != nil {
		return OTPIssue{}, err
	}
	if exists {
		return OTPIssue{}, ErrCredentialTaken
	}

	code, err := security.GenerateOTP()
	if err != nil {
		return OTPIssue{}, err
	}
	token, err := security.GenerateSignupToken()
	if err != nil {
		return OTPIssue{}, err
	}

	delivered := false
	if flow.mailer != nil && IsEmailCredential(credential) {
		delivered = flow.mailer.SendOTP(ctx, credential, code) == nil
	}

	flow.mu.Lock()
	flow.pruneExpiredLocked()
	flow.pending[token] = &PendingSignup{
		Name:       name,
		Credential: credential,
		OTPCode:    code,
		Stage:      StageAwaitingOTP,
		IssuedAt:   flow.now(),
	}
	flow.mu.Unlock()

	issue := OTPIssue{Token: token, Delivered: delivered}
	if !delivered {
		issue.DebugOTP = code
	}
	return issue, nil
}

// Verify checks the submitted code and password. On success the account is
// created with notifications disabled and the pending attempt is discarded;
// on mismatch or missing password the attempt stays in awaiting_otp.
func (flow *SignupFlow) Verify(token string, code string, password string) (models.User, error) {
	flow.mu.Lock()
	defer flow.mu.Unlock()

	attempt, ok := flow.pending[token]
	if !ok || attempt.Stage != StageAwaitingOTP {
		return models.User{}, ErrSignupNotFound
	}

	if flow.now().Sub(attempt.IssuedAt) > flow.otpTTL {
		delete(flow.pending, token)
		return models.User{}, ErrOTPExpired
	}
	if code != attempt.OTPCode {
		return models.User{}, ErrOTPMismatch
	}
	if strings.TrimSpace(password) == "" {
		return models.User{}, ErrPasswordMissing
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:                   uuid.NewString(),
		Name:                 attempt.Name,
		Credential:           attempt.Credential,
		PasswordHash:         string(passwordHash),
		JoinedOn:             flow.now(),
		NotificationsEnabled: false,
	}
	if err := flow.users.Create(&user); err != nil {
		// Another session claimed the credential between Start and Verify.
		return models.User{}, ErrCredentialTaken
	}

	attempt.Stage = StageCompleted
	delete(flow.pending, token)
	return user, nil
}

// Stage reports the current stage of an attempt, for display purposes.
func (flow *SignupFlow) Stage(token string) (string, bool) {
	flow.mu.Lock()
	defer flow.mu.Unlock()

	attempt, ok := flow.pending[token]
	if !ok {
		return "", false
	}
	return attempt.Stage, true
}

func (flow *SignupFlow) pruneExpiredLocked() {
	threshold := flow.now().Add(-flow.otpTTL)
	for token, attempt := range flow.pending {
		if attempt.IssuedAt.Before(threshold) {
			delete(flow.pending, token)
		}
	}
}
