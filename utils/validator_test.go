package utils

import (
	"errors"
	"testing"
)

func codeOf(t *testing.T, err error) ErrorCode {
	t.Helper()
	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("user@domain.com"); err != nil {
		t.Errorf("valid email rejected: %v", err)
	}
	if code := codeOf(t, ValidateEmail("")); code != ErrMissingField {
		t.Errorf("empty email: got %s, want MISSING_FIELD", code)
	}
	for _, bad := range []string{"no-at-sign", "user@", "user@host", "a b@c.com"} {
		if err := ValidateEmail(bad); err == nil {
			t.Errorf("accepted invalid email %q", bad)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	if err := ValidateUsername("healthy_user.01"); err != nil {
		t.Errorf("valid username rejected: %v", err)
	}
	if code := codeOf(t, ValidateUsername("short")); code != ErrValidationError {
		t.Errorf("short username: got %s, want VALIDATION_ERROR", code)
	}
	if code := codeOf(t, ValidateUsername("has space!")); code != ErrInvalidFormat {
		t.Errorf("bad characters: got %s, want INVALID_FORMAT", code)
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("Str0ng!pass"); err != nil {
		t.Errorf("valid password rejected: %v", err)
	}
	for _, bad := range []string{"", "short", "alllowercase1!", "ALLUPPERCASE1!", "NoDigits!!", "NoSpecial11"} {
		if err := ValidatePassword(bad); err == nil {
			t.Errorf("accepted weak password %q", bad)
		}
	}
}
