package auth

import (
	"errors"
	"regexp"
	"strings"
)

const (
	MinPasswordLen = 6
	MinNameLen     = 2
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var (
	ErrInvalidEmail  = errors.New("Please enter a valid email address")
	ErrShortPassword = errors.New("Password must be at least 6 characters")
	ErrShortName     = errors.New("Name must be at least 2 characters")
	ErrInvalidRole   = errors.New("Role must be admin, faculty or student")
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	if !emailRe.MatchString(NormalizeEmail(email)) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return ErrShortPassword
	}
	return nil
}

func ValidateSignUp(email, password, fullName, role string) error {
	if len(strings.TrimSpace(fullName)) < MinNameLen {
		return ErrShortName
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if !ValidRole(role) {
		return ErrInvalidRole
	}
	return nil
}
