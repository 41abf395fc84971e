package model

import (
	"errors"
	"fmt"
	"strings"
)

// Directory errors.
var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateUser    = errors.New("user already exists")
	ErrPasswordMismatch = errors.New("password mismatch")
)

// Service errors.
var (
	ErrValidationFailed      = errors.New("validation failed")
	ErrInvalidEmailFormat    = errors.New("invalid email format")
	ErrInvalidPasswordFormat = errors.New("invalid password format: password must be at least 6 characters and contain a lowercase letter, an uppercase letter, a digit and one of @$!%*?&")
	ErrRegistrationFailed    = errors.New("registration failed")
	ErrAuthenticationFailed  = errors.New("invalid login attempt")
	ErrClaimMutationFailed   = errors.New("claim mutation failed")
	ErrUserNotFound          = errors.New("user not found")
	ErrUnauthenticated       = errors.New("missing or invalid authorization")
	ErrForbidden             = errors.New("access denied by policy")
	ErrTokenInvalid          = errors.New("token invalid")
	ErrUnknownPolicy         = errors.New("unknown policy")
)

// ValidationError reports which credential field failed validation.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap exposes both the field-specific cause and ErrValidationFailed.
func (e *ValidationError) Unwrap() []error {
	return []error{e.Err, ErrValidationFailed}
}

// DirectoryError is a rejection reported by a UserDirectory.
type DirectoryError struct {
	Op      string
	Reasons []string
	Err     error
}

func (e *DirectoryError) Error() string {
	if len(e.Reasons) == 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, strings.Join(e.Reasons, "; "))
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// RegistrationError is returned when the directory refuses to create a user.
type RegistrationError struct {
	Reasons []string
	Err     error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRegistrationFailed, strings.Join(e.Reasons, "; "))
}

func (e *RegistrationError) Unwrap() []error {
	return []error{ErrRegistrationFailed, e.Err}
}

// ClaimMutationError is returned when the directory refuses a claim change.
type ClaimMutationError struct {
	Reasons []string
	Err     error
}

func (e *ClaimMutationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrClaimMutationFailed, strings.Join(e.Reasons, "; "))
}

func (e *ClaimMutationError) Unwrap() []error {
	return []error{ErrClaimMutationFailed, e.Err}
}

// ReasonsOf extracts rejection reasons from err, falling back to its message.
func ReasonsOf(err error) []string {
	var dirErr *DirectoryError
	if errors.As(err, &dirErr) && len(dirErr.Reasons) > 0 {
		return dirErr.Reasons
	}
	return []string{err.Error()}
}
