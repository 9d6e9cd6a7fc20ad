package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg == "invalid_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeFallsBackToCode(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected fallback to the code itself, got %q", msg)
	}
}

func TestTranslator_EmbedsExpectedType(t *testing.T) {
	msg := T("invalid_type", map[string]string{"expected": "object"})
	if msg == "invalid type" {
		t.Fatalf("expected the message to embed the expected type, got %q", msg)
	}
}
