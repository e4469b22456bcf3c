package service

import (
	"strings"
	"testing"
)

func TestBuildResetMessageWithLink(t *testing.T) {
	body := BuildResetMessage("Alex Nguyen", "alex@example.com", "tok123", "https://app.example.com/reset")

	if !strings.Contains(body, "Hello Alex Nguyen") {
		t.Errorf("greeting missing: %q", body)
	}
	if !strings.Contains(body, "https://app.example.com/reset?email=alex%40example.com&token=tok123") {
		t.Errorf("reset link missing or not escaped: %q", body)
	}
	if strings.Contains(body, "<b>tok123</b>") {
		t.Error("raw code shown even though a link was built")
	}
}

func TestBuildResetMessageWithCode(t *testing.T) {
	body := BuildResetMessage("", "alex@example.com", "tok123", "")

	// Without a full name the address is used as salutation.
	if !strings.Contains(body, "Hello alex@example.com") {
		t.Errorf("fallback greeting missing: %q", body)
	}
	if !strings.Contains(body, "<b>tok123</b>") {
		t.Errorf("raw code missing: %q", body)
	}
	if strings.Contains(body, "href") {
		t.Error("link built without a frontend URL configured")
	}
}

func TestHashResetTokenDeterministic(t *testing.T) {
	a := HashResetToken("tok123")
	b := HashResetToken("tok123")
	if a != b {
		t.Fatal("same token hashed to different values")
	}
	if len(a) != 64 {
		t.Fatalf("hash length = %d, want 64 hex chars", len(a))
	}
	if a == HashResetToken("tok124") {
		t.Fatal("different tokens collided")
	}
}
