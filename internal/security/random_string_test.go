package security

import (
	"strings"
	"testing"
)

func TestRandomString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		length   int
		alphabet string
		wantErr  bool
	}{
		{
			name:     "negative length",
			length:   -1,
			alphabet: "abc",
			wantErr:  true,
		},
		{
			name:     "empty alphabet",
			length:   1,
			alphabet: "",
			wantErr:  true,
		},
		{
			name:     "zero length",
			length:   0,
			alphabet: "abc",
			wantErr:  false,
		},
		{
			name:     "normal generation",
			length:   64,
			alphabet: "ABCDEFGHJKLMNPQRSTUVWXYZ23456789",
			wantErr:  false,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := RandomString(test.length, test.alphabet)
			if test.wantErr {
				if err == nil {
					t.Fatalf("RandomString(%d, %q) expected error, got nil", test.length, test.alphabet)
				}
				return
			}

			if err != nil {
				t.Fatalf("RandomString(%d, %q) returned error: %v", test.length, test.alphabet, err)
			}
			if len(got) != test.length {
				t.Fatalf("RandomString(%d, %q) len = %d, want %d", test.length, test.alphabet, len(got), test.length)
			}

			for _, char := range got {
				if !strings.ContainsRune(test.alphabet, char) {
					t.Fatalf("RandomString(%d, %q) produced char %q outside alphabet", test.length, test.alphabet, char)
				}
			}
		})
	}
}

func TestGenerateOTP_IsSixDigits(t *testing.T) {
	t.Parallel()

	for attempt := 0; attempt < 50; attempt++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP returned error: %v", err)
		}
		if len(code) != OTPLength {
			t.Fatalf("GenerateOTP len = %d, want %d", len(code), OTPLength)
		}
		for _, char := range code {
			if char < '0' || char > '9' {
				t.Fatalf("GenerateOTP produced non-digit %q in %q", char, code)
			}
		}
	}
}

func TestGenerateSignupToken_IsOpaqueAndUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for attempt := 0; attempt < 20; attempt++ {
		token, err := GenerateSignupToken()
		if err != nil {
			t.Fatalf("GenerateSignupToken returned error: %v", err)
		}
		if len(token) != signupTokenLength {
			t.Fatalf("GenerateSignupToken len = %d, want %d", len(token), signupTokenLength)
		}
		if _, duplicate := seen[token]; duplicate {
			t.Fatalf("GenerateSignupToken produced duplicate token %q", token)
		}
		seen[token] = struct{}{}
	}
}
