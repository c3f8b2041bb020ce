package service

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	appErrors "github.com/noah-isme/childcare-api/pkg/errors"
)

// namePattern admits letters plus hyphens, apostrophes and single internal
// spaces.
var namePattern = regexp.MustCompile(`^[a-zA-Z'-]+(?: [a-zA-Z'-]+)*$`)

// validateName screens a person or group name before it is normalized.
func validateName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return appErrors.Clone(appErrors.ErrValidation, "Names must be at least 2 characters")
	}
	if !namePattern.MatchString(name) {
		return appErrors.Clone(appErrors.ErrValidation, "Names must not contain numbers or special characters besides hyphens, apostrophes and spaces")
	}
	return nil
}

// capitalize normalizes a name to first rune upper, remainder lower, so
// "sAm" and "Sam" are the same registration.
func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	first, width := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[width:])
}

// normalizePhone restores the leading zero that JSON numbers drop and
// validates the result as a ten digit phone number.
func normalizePhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	if !strings.HasPrefix(phone, "0") {
		phone = "0" + phone
	}
	if len(phone) != 10 {
		return "", appErrors.Clone(appErrors.ErrValidation, "Please enter a valid 10 digit phone number")
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return "", appErrors.Clone(appErrors.ErrValidation, "Please enter a valid 10 digit phone number")
		}
	}
	return phone, nil
}
