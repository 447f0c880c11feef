package session

import (
	"regexp"
	"strings"
)

const (
	minPasswordLen = 6
	minNameLen     = 2
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateCredentials runs the same checks the server enforces, so obviously
// bad input fails fast without a round trip.
func validateCredentials(email, password string) error {
	if !emailRe.MatchString(normalizeEmail(email)) {
		return ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return ErrShortPassword
	}
	return nil
}

func validateSignUp(email, password, fullName, role string) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}
	if len(strings.TrimSpace(fullName)) < minNameLen {
		return ErrShortName
	}
	switch role {
	case "admin", "faculty", "student":
		return nil
	}
	return ErrInvalidRole
}
