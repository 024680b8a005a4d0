package config

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if got := ReadToken(); got != "" {
		t.Fatalf("ReadToken before save: got %q, want empty", got)
	}
	if err := SaveToken("abc123"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if got := ReadToken(); got != "abc123" {
		t.Errorf("ReadToken: got %q, want abc123", got)
	}
	if err := ClearToken(); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	if got := ReadToken(); got != "" {
		t.Errorf("ReadToken after clear: got %q, want empty", got)
	}
	// Clearing twice is fine.
	if err := ClearToken(); err != nil {
		t.Errorf("second ClearToken: %v", err)
	}
}

func TestAPIURLOverride(t *testing.T) {
	t.Setenv("EQUIPTRACK_API_URL", "http://example.test:9999")
	if got := APIURL(); got != "http://example.test:9999" {
		t.Errorf("APIURL: got %q", got)
	}
}
