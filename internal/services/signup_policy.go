package services

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
)

var (
	ErrIdentityIncomplete = errors.New("name and contact are required")
	ErrCredentialInvalid  = errors.New("invalid contact or email")
	ErrCredentialTaken    = errors.New("account already exists for this contact")
	ErrSignupNotFound     = errors.New("signup attempt not found")
	ErrOTPMismatch        = errors.New("invalid otp")
	ErrOTPExpired         = errors.New("otp expired")
	ErrPasswordMissing    = errors.New("password required")
)

var phoneCredentialRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,14}[0-9]$`)

// NormalizeCredential canonicalizes the contact string used as the account
// key: emails are lowercased and validated, phone numbers keep only their
// digits and leading plus.
func NormalizeCredential(raw string) (string, error) {
	credential := strings.TrimSpace(raw)
	if credential == "" {
		return "", ErrCredentialInvalid
	}

	if strings.Contains(credential, "@") {
		credential = strings.ToLower(credential)
		if _, err := mail.ParseAddress(credential); err != nil {
			return "", ErrCredentialInvalid
		}
		return credential, nil
	}

	if !phoneCredentialRegex.MatchString(credential) {
		return "", ErrCredentialInvalid
	}
	compact := strings.NewReplacer(" ", "", "-", "").Replace(credential)
	return compact, nil
}

// ValidateSignupIdentity checks the stage-1 inputs of the signup flow.
func ValidateSignupIdentity(nameRaw string, credentialRaw string) (string, string, error) {
	name := strings.TrimSpace(nameRaw)
	if name == "" || strings.TrimSpace(credentialRaw) == "" {
		return "", "", ErrIdentityIncomplete
	}

	credential, err := NormalizeCredential(credentialRaw)
	if err != nil {
		return "", "", err
	}
	return name, credential, nil
}

// IsEmailCredential reports whether the credential can receive the OTP by
// email. Phone credentials keep the flow usable through the debug code.
func IsEmailCredential(credential string) bool {
	return strings.Contains(credential, "@")
}
