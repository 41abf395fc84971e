package model

import "time"

// TokenIssuer signs claim sets into bearer tokens.
type TokenIssuer interface {
	Issue(claims ClaimSet) (AuthToken, error)
}

// TokenValidator verifies bearer tokens and returns their claims.
type TokenValidator interface {
	Validate(token string) (TokenClaims, error)
}

// AuthToken is a signed bearer token with its expiration.
type AuthToken struct {
	SignedPayload string
	ExpiresAt     time.Time
}

// AuthenticationResponse is returned to callers after register and login.
type AuthenticationResponse struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
}

// TokenClaims is the content of a validated token.
type TokenClaims struct {
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
	Claims    ClaimSet
}
