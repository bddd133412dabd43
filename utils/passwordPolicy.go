package utils

import "strings"

const passwordSymbols = `!@#$%^&*()-_=+[]{};:'",.<>/?\|` + "`~"

// ValidatePassword checks the sign-up password rules in a fixed order and
// reports the first rule that fails. It never sees a stored hash; callers
// must run it before hashing.
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "password must be at least 8 characters long"
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	if !hasUpper {
		return false, "password must contain at least one uppercase letter"
	}
	if !hasLower {
		return false, "password must contain at least one lowercase letter"
	}
	if !hasDigit {
		return false, "password must contain at least one number"
	}
	if !hasSymbol {
		return false, "password must contain at least one special character"
	}
	return true, "password is strong"
}
