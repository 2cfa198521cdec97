// Package utils carries small helpers shared across services.
package utils

import (
	"regexp"
	"strings"
)

var (
	phoneStripRe  = regexp.MustCompile(`[\s\-\(\)\+]`)
	phoneDigitsRe = regexp.MustCompile(`^\d{7,15}$`)
	phoneKeepRe   = regexp.MustCompile(`[^\d\+]`)
	plusRe        = regexp.MustCompile(`\+`)
)

// IsEmail reports whether the login identifier looks like an email
// address. This is a deliberate heuristic, not strict validation: any
// string containing both "@" and "." passes, and clients rely on that
// behavior.
func IsEmail(input string) bool {
	if input == "" {
		return false
	}
	return strings.Contains(input, "@") && strings.Contains(input, ".")
}

// IsPhoneNumber reports whether the login identifier looks like a phone
// number: after stripping spaces, dashes, parentheses and plus signs it
// must be 7 to 15 digits.
func IsPhoneNumber(input string) bool {
	if input == "" {
		return false
	}
	clean := phoneStripRe.ReplaceAllString(input, "")
	return phoneDigitsRe.MatchString(clean)
}

// NormalizePhoneNumber strips formatting characters, keeping digits and
// at most one leading "+".
func NormalizePhoneNumber(phone string) string {
	if phone == "" {
		return ""
	}

	normalized := phoneKeepRe.ReplaceAllString(phone, "")

	if strings.HasPrefix(normalized, "+") {
		normalized = "+" + plusRe.ReplaceAllString(normalized[1:], "")
	} else {
		normalized = plusRe.ReplaceAllString(normalized, "")
	}

	return normalized
}
