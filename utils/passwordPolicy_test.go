package utils

import "testing"

func TestValidatePassword_RuleOrder(t *testing.T) {
	// Each case fails exactly one rule beyond the previous ones, so the
	// reported reason pins the evaluation order.
	cases := []struct {
		password string
		expected string
	}{
		{"aB1!", "password must be at least 8 characters long"},
		{"abcdef1!", "password must contain at least one uppercase letter"},
		{"ABCDEF1!", "password must contain at least one lowercase letter"},
		{"Abcdefg!", "password must contain at least one number"},
		{"Abcdefg1", "password must contain at least one special character"},
	}
	for _, tc := range cases {
		ok, reason := ValidatePassword(tc.password)
		if ok {
			t.Fatalf("ValidatePassword(%q) expected failure, got ok", tc.password)
		}
		if reason != tc.expected {
			t.Fatalf("ValidatePassword(%q) expected %q, got %q", tc.password, tc.expected, reason)
		}
	}
}

func TestValidatePassword_ShortPasswordReportsLengthFirst(t *testing.T) {
	// Short and missing everything else: length must win.
	ok, reason := ValidatePassword("a1!")
	if ok {
		t.Fatal("expected failure for short password")
	}
	if reason != "password must be at least 8 characters long" {
		t.Fatalf("expected length rule first, got %q", reason)
	}
}

func TestValidatePassword_Strong(t *testing.T) {
	ok, reason := ValidatePassword("Str0ng-Pass!")
	if !ok {
		t.Fatalf("expected strong password to pass, got %q", reason)
	}
	if reason != "password is strong" {
		t.Fatalf("unexpected success message %q", reason)
	}
}
