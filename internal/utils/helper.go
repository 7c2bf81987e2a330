package utils

import (
	"regexp"
	"strings"
)

var nonDigitRe = regexp.MustCompile(`[^0-9]`)

// DigitsOnly strips everything but ASCII digits.
func DigitsOnly(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
