package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserDirectory stores user identities and their authorization claims.
type UserDirectory interface {
	CreateUser(ctx context.Context, username, email, password string) (UserIdentity, error)
	FindByUsername(ctx context.Context, username string) (UserIdentity, error)
	FindByID(ctx context.Context, id uuid.UUID) (UserIdentity, error)
	VerifyPassword(ctx context.Context, username, password string) error
	GetClaims(ctx context.Context, user UserIdentity) (ClaimSet, error)
	AddClaim(ctx context.Context, user UserIdentity, claim Claim) error
	RemoveClaim(ctx context.Context, user UserIdentity, claim Claim) error
	ListUsersOrderedByUsername(ctx context.Context) ([]UserIdentity, error)
}

// UserIdentity represents a stored user.
type UserIdentity struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Summary returns the public projection of the user.
func (u UserIdentity) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// UserSummary is the public-safe view of a user returned by listings.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// PasswordHasher hashes passwords for storage and verifies them later.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
