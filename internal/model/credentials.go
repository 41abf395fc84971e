package model

import "strings"

// UserCredentials is an email/password pair supplied by a caller. It is never persisted.
type UserCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Username returns the directory username derived from the credential email.
func (c UserCredentials) Username() string {
	return UsernameFromEmail(c.Email)
}

// UsernameFromEmail returns the part of email before the first '@'.
// An email without '@' is returned unchanged.
func UsernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
