package utils

import "testing"

func TestGenerateOTP(t *testing.T) {
	t.Run("six digits", func(t *testing.T) {
		code, err := GenerateOTP(6)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in OTP: %q", code)
			}
		}
	})

	t.Run("too-short request falls back to six", func(t *testing.T) {
		code, err := GenerateOTP(2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
	})
}
