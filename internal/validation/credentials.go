// Package validation checks user credentials before they reach the directory.
package validation

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/dtroode/accounts-server/internal/model"
)

// PasswordSymbols lists the symbols a password may contain; at least one is required.
const PasswordSymbols = "@$!%*?&"

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

var (
	emailPattern = regexp.MustCompile(
		"^[A-Za-z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[A-Za-z0-9!#$%&'*+/=?^_`{|}~-]+)*" +
			"@(?:[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?\\.)+[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?$",
	)
	passwordAlphabet = regexp.MustCompile(`^[A-Za-z0-9@$!%*?&]+$`)
)

var emailRules = []validation.Rule{
	validation.Required.Error("email is required"),
	validation.Match(emailPattern).Error("email must be a valid address"),
}

var passwordRules = []validation.Rule{
	validation.Required.Error("password is required"),
	validation.RuneLength(MinPasswordLength, 0).Error("password must be at least 6 characters long"),
	validation.Match(passwordAlphabet).Error("password may only contain letters, digits and " + PasswordSymbols),
	validation.By(containsAny("abcdefghijklmnopqrstuvwxyz", "password must contain a lowercase letter")),
	validation.By(containsAny("ABCDEFGHIJKLMNOPQRSTUVWXYZ", "password must contain an uppercase letter")),
	validation.By(containsAny("0123456789", "password must contain a digit")),
	validation.By(containsAny(PasswordSymbols, "password must contain one of "+PasswordSymbols)),
}

// Validate checks the email and then the password of creds.
// The returned error is a *model.ValidationError wrapping ErrInvalidEmailFormat
// or ErrInvalidPasswordFormat.
func Validate(creds model.UserCredentials) error {
	if err := ValidateEmail(creds.Email); err != nil {
		return err
	}
	return ValidatePassword(creds.Password)
}

// ValidateEmail checks email against the address grammar.
func ValidateEmail(email string) error {
	if err := validation.Validate(email, emailRules...); err != nil {
		return &model.ValidationError{Field: "email", Reason: err.Error(), Err: model.ErrInvalidEmailFormat}
	}
	return nil
}

// ValidatePassword checks password against the password policy.
func ValidatePassword(password string) error {
	if err := validation.Validate(password, passwordRules...); err != nil {
		return &model.ValidationError{Field: "password", Reason: err.Error(), Err: model.ErrInvalidPasswordFormat}
	}
	return nil
}

func containsAny(chars, message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if !strings.ContainsAny(s, chars) {
			return errors.New(message)
		}
		return nil
	}
}
