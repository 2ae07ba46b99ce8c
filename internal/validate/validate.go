// Package validate checks user input before it reaches the server, so the
// common mistakes fail fast with a friendly message instead of a 422.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Kenyan mobile numbers: +2547XXXXXXXX / +2541XXXXXXXX, or the local
	// 07XX / 01XX form.
	phoneRe = regexp.MustCompile(`^(\+254[17]\d{8}|0[17]\d{8})$`)
	// KRA PINs: a letter, nine digits, a letter.
	kraPinRe = regexp.MustCompile(`^[A-Z]\d{9}[A-Z]$`)
)

// Required rejects empty or whitespace-only values.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// Email checks basic address shape.
func Email(value string) error {
	if !emailRe.MatchString(value) {
		return fmt.Errorf("%q is not a valid email address", value)
	}
	return nil
}

// Phone checks for a Kenyan mobile number in either +254 or 0-prefixed form.
func Phone(value string) error {
	cleaned := strings.ReplaceAll(strings.ReplaceAll(value, " ", ""), "-", "")
	if !phoneRe.MatchString(cleaned) {
		return fmt.Errorf("%q is not a valid Kenyan phone number", value)
	}
	return nil
}

// Password enforces the platform's minimum: eight characters with at least
// one letter and one digit.
func Password(value string) error {
	if len(value) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain at least one letter and one digit")
	}
	return nil
}

// KRAPin checks the Kenya Revenue Authority PIN format (e.g. A012345678Z).
func KRAPin(value string) error {
	if !kraPinRe.MatchString(strings.ToUpper(value)) {
		return fmt.Errorf("%q is not a valid KRA PIN", value)
	}
	return nil
}
