package config

import (
	"os"
	"strings"
)

// SignupDisabled closes public registration (ops switch for abuse waves).
//
// Set via env:
// - SIGNUP_DISABLED=true
func SignupDisabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("SIGNUP_DISABLED")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
