package utils

import (
	"net/http"
	"regexp"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

	// Go's regexp has no lookahead, so the password policy is checked
	// one character class at a time.
	passwordLower   = regexp.MustCompile(`[a-z]`)
	passwordUpper   = regexp.MustCompile(`[A-Z]`)
	passwordDigit   = regexp.MustCompile(`\d`)
	passwordSpecial = regexp.MustCompile(`[@#^_()\[\]$!%*?&]`)
)

func ValidateEmail(email string) error {
	if email == "" {
		return NewAppError("Email is required", http.StatusBadRequest, ErrMissingField)
	}
	if !emailRegex.MatchString(email) {
		return NewAppError(
			"Invalid email format. Please use a valid email address (e.g., user@domain.com)",
			http.StatusBadRequest,
			ErrInvalidFormat,
		)
	}
	return nil
}

func ValidateUsername(username string) error {
	if username == "" {
		return NewAppError("Username is required", http.StatusBadRequest, ErrMissingField)
	}
	if len(username) < 6 || len(username) > 30 {
		return NewAppError(
			"Username must be between 6 and 30 characters",
			http.StatusBadRequest,
			ErrValidationError,
		)
	}
	if !usernameRegex.MatchString(username) {
		return NewAppError(
			"Username can only contain letters, numbers, dots, underscores, and hyphens",
			http.StatusBadRequest,
			ErrInvalidFormat,
		)
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return NewAppError("Password is required", http.StatusBadRequest, ErrMissingField)
	}
	if len(password) < 6 {
		return NewAppError(
			"Password must be at least 6 characters long",
			http.StatusBadRequest,
			ErrValidationError,
		)
	}
	if !passwordLower.MatchString(password) ||
		!passwordUpper.MatchString(password) ||
		!passwordDigit.MatchString(password) ||
		!passwordSpecial.MatchString(password) {
		return NewAppError(
			"Password must contain at least one uppercase letter, one lowercase letter, one number and one special character",
			http.StatusBadRequest,
			ErrValidationError,
		)
	}
	return nil
}
