package privacy

import (
	"strings"
	"testing"
)

func TestAnonymize_DeAnonymize_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no matches", "nothing sensitive here"},
		{"empty", ""},
		{"single email", "write to alice@example.com please"},
		{"single phone", "Call me at 555-123-4567"},
		{"email and phone", "alice@example.com or 555-123-4567"},
		{"repeated email", "alice@example.com and again alice@example.com"},
		{"many matches", "a@b.com c@d.org 555-123-4567 (212) 555-0184 e@f.net"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sanitized, tokens := Anonymize(tt.text)

			if got := DeAnonymize(sanitized, tokens); got != tt.text {
				t.Errorf("round trip = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestAnonymize_RemovesMatchedSubstrings(t *testing.T) {
	text := "mail alice@example.com or call 555-123-4567"
	sanitized, tokens := Anonymize(text)

	for token, original := range tokens {
		if strings.Contains(sanitized, original) {
			t.Errorf("sanitized text still contains %q", original)
		}
		if !strings.Contains(sanitized, token) {
			t.Errorf("sanitized text missing token %q", token)
		}
	}

	if len(tokens) != 2 {
		t.Errorf("token count = %d, want 2", len(tokens))
	}
}

func TestAnonymize_TokenShape(t *testing.T) {
	sanitized, tokens := Anonymize("a@b.com then 555-123-4567")

	if !strings.Contains(sanitized, "[EMAIL_1]") {
		t.Errorf("expected [EMAIL_1] in %q", sanitized)
	}
	if !strings.Contains(sanitized, "[PHONE_2]") {
		t.Errorf("expected [PHONE_2] (shared counter) in %q", sanitized)
	}
	if tokens["[EMAIL_1]"] != "a@b.com" {
		t.Errorf("token map [EMAIL_1] = %q", tokens["[EMAIL_1]"])
	}
}

func TestAnonymize_PhoneScenario(t *testing.T) {
	text := "Call me at 555-123-4567"
	sanitized, tokens := Anonymize(text)

	if strings.Contains(sanitized, "555-123-4567") {
		t.Errorf("literal phone number survived anonymization: %q", sanitized)
	}
	if len(tokens) != 1 {
		t.Fatalf("token count = %d, want 1", len(tokens))
	}
	for _, original := range tokens {
		if original != "555-123-4567" {
			t.Errorf("token map holds %q, want the phone number", original)
		}
	}
}

func TestAnonymize_StableWithinCall(t *testing.T) {
	text := "a@b.com and 555-123-4567"

	firstSanitized, _ := Anonymize(text)
	secondSanitized, _ := Anonymize(text)

	if firstSanitized != secondSanitized {
		t.Errorf("identical input produced different sanitized text: %q vs %q", firstSanitized, secondSanitized)
	}
}

func TestDeAnonymize_TokenSubstringSafety(t *testing.T) {
	// Hand-built map where one token is lexically close to another; longer
	// tokens must be applied first.
	tokens := TokenMap{
		"[EMAIL_1]":  "one@example.com",
		"[EMAIL_10]": "ten@example.com",
	}

	text := "first [EMAIL_1] then [EMAIL_10]"
	want := "first one@example.com then ten@example.com"

	if got := DeAnonymize(text, tokens); got != want {
		t.Errorf("DeAnonymize() = %q, want %q", got, want)
	}
}
