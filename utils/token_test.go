package utils

import (
	"strings"
	"testing"
)

func TestJwtRoundTrip(t *testing.T) {
	token, err := JwtGenerate("user-123")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}
	claims, err := JwtValidate(token)
	if err != nil {
		t.Fatalf("JwtValidate: %v", err)
	}
	if claims.UserId != "user-123" {
		t.Fatalf("expected user id user-123, got %q", claims.UserId)
	}
}

func TestJwtValidate_RejectsTamperedToken(t *testing.T) {
	token, err := JwtGenerate("user-123")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}
	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := JwtValidate(tampered); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestJwtValidate_RejectsGarbage(t *testing.T) {
	if _, err := JwtValidate("not-a-token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}
