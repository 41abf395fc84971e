// Package repository holds helpers shared by the UserDirectory implementations.
package repository

import (
	"errors"
	"fmt"

	"github.com/dtroode/accounts-server/internal/model"
	"github.com/dtroode/accounts-server/internal/security"
)

// Directory operation names used in DirectoryError.Op.
const (
	OpCreateUser  = "create user"
	OpAddClaim    = "add claim"
	OpRemoveClaim = "remove claim"
)

// DuplicateUsernameReason describes a taken username.
func DuplicateUsernameReason(username string) string {
	return fmt.Sprintf("Username '%s' is already taken.", username)
}

// DuplicateEmailReason describes a taken email.
func DuplicateEmailReason(email string) string {
	return fmt.Sprintf("Email '%s' is already taken.", email)
}

// HashError converts a hasher failure during user creation into a directory rejection
// when the password itself is at fault.
func HashError(err error) error {
	if errors.Is(err, security.ErrPasswordTooLong) {
		return &model.DirectoryError{
			Op:      OpCreateUser,
			Reasons: []string{fmt.Sprintf("Passwords must be at most %d bytes long.", security.MaxPasswordBytes)},
			Err:     err,
		}
	}
	return fmt.Errorf("failed to hash password: %w", err)
}

// UserNotFound is the rejection returned when a claim mutation targets a missing user.
func UserNotFound(op string) error {
	return &model.DirectoryError{
		Op:      op,
		Reasons: []string{"User not found."},
		Err:     model.ErrNotFound,
	}
}
