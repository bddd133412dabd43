package utils

import (
	"strings"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"Owner@Duka.Test", "owner@duka.test"},
		{"  owner@duka.test  ", "owner@duka.test"},
		{"OWNER@DUKA.TEST", "owner@duka.test"},
	}
	for _, tc := range cases {
		if got := NormalizeEmail(tc.in); got != tc.expected {
			t.Fatalf("NormalizeEmail(%q) expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "owner+tag@duka.test", "x.y_z@sub.domain.org"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Fatalf("expected %q to be valid", e)
		}
	}
	invalid := []string{"", "plainaddress", "@no-local.test", "user@", "user@host"}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Fatalf("expected %q to be invalid", e)
		}
	}
}

func TestExecTemplate_ConditionalFragment(t *testing.T) {
	tmpl := `SELECT 1 WHERE a = @a {{- if .productName }} AND name = @productName {{- end }}`

	withFilter, err := ExecTemplate(tmpl, map[string]interface{}{"productName": "Sugar"})
	if err != nil {
		t.Fatalf("ExecTemplate: %v", err)
	}
	if !strings.Contains(withFilter, "AND name = @productName") {
		t.Fatalf("expected filter fragment, got %q", withFilter)
	}

	withoutFilter, err := ExecTemplate(tmpl, map[string]interface{}{"productName": ""})
	if err != nil {
		t.Fatalf("ExecTemplate: %v", err)
	}
	if strings.Contains(withoutFilter, "AND name") {
		t.Fatalf("expected no filter fragment, got %q", withoutFilter)
	}
}
