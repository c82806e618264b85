package services

import (
	"errors"
	"fmt"
	"unicode"
)

const (
	minPasswordLength = 8
	// bcrypt rejects inputs longer than this.
	maxPasswordBytes = 72
)

var ErrWeakPassword = errors.New("weak password")

var (
	ErrPasswordTooShort       = fmt.Errorf("%w: use at least %d characters", ErrWeakPassword, minPasswordLength)
	ErrPasswordTooLong        = fmt.Errorf("%w: use at most %d bytes", ErrWeakPassword, maxPasswordBytes)
	ErrPasswordMissingClasses = fmt.Errorf("%w: mix upper case, lower case and digits", ErrWeakPassword)
)

// ValidatePasswordStrength guards the owner password. Every returned error
// wraps ErrWeakPassword and names the rule that failed.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}

	var hasUpper, hasLower, hasDigit bool
	for _, char := range password {
		hasUpper = hasUpper || unicode.IsUpper(char)
		hasLower = hasLower || unicode.IsLower(char)
		hasDigit = hasDigit || unicode.IsDigit(char)
	}
	if !hasUpper || !hasLower || !hasDigit {
		return ErrPasswordMissingClasses
	}
	return nil
}
