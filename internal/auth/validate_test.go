package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{"valid", "ada@example.com", nil},
		{"valid mixed case", "Ada@Example.COM", nil},
		{"no at sign", "not-an-email", ErrInvalidEmail},
		{"no domain dot", "ada@example", ErrInvalidEmail},
		{"empty", "", ErrInvalidEmail},
		{"spaces inside", "ada lovelace@example.com", ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, ValidateEmail(tt.email))
		})
	}
}

func TestValidateSignUp(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		fullName string
		role     string
		wantErr  error
	}{
		{"valid student", "a@b.com", "secret1", "Ada Lovelace", RoleStudent, nil},
		{"valid admin", "a@b.com", "secret1", "Ada Lovelace", RoleAdmin, nil},
		{"short password", "a@b.com", "12345", "Ada Lovelace", RoleStudent, ErrShortPassword},
		{"short name", "a@b.com", "secret1", "A", RoleStudent, ErrShortName},
		{"name only spaces", "a@b.com", "secret1", "   ", RoleStudent, ErrShortName},
		{"bad email", "not-an-email", "secret1", "Ada Lovelace", RoleStudent, ErrInvalidEmail},
		{"bad role", "a@b.com", "secret1", "Ada Lovelace", "superuser", ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, ValidateSignUp(tt.email, tt.password, tt.fullName, tt.role))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}
