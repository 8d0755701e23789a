package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrPasswordMismatch = errors.New("Passwords do not match")
	ErrWeakPassword     = errors.New("Password must be at least 8 characters long and include uppercase, lowercase, a number, and a special character")
	ErrInvalidInput     = errors.New("invalid input")
)

const passwordSpecials = "@$!%*?&"

// IsStrongPassword reports whether p has at least 8 characters, all from
// letters, digits and @$!%*?&, with at least one lower-case letter, one
// upper-case letter, one digit and one of the specials.
func IsStrongPassword(p string) bool {
	if len(p) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

func strongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("strongpassword", strongPassword)
	return v
}

// formatValidationError maps validator failures to the messages shown on
// the forms. A password mismatch is reported before weakness.
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors) //nolint:errorlint
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		if e.Tag() == "eqfield" {
			return ErrPasswordMismatch
		}
	}
	for _, e := range validationErrs {
		if e.Tag() == "strongpassword" {
			return ErrWeakPassword
		}
	}

	e := validationErrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, e.Field())
	case "email":
		return fmt.Errorf("%w: %s is not a valid email address", ErrInvalidInput, e.Field())
	default:
		return fmt.Errorf("%w: %s failed %s", ErrInvalidInput, e.Field(), e.Tag())
	}
}
