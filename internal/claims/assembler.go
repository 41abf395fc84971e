// Package claims builds the claim set embedded in issued tokens.
package claims

import "github.com/dtroode/accounts-server/internal/model"

// Assemble returns the identity claims derived from email followed by the
// user's stored claims. Stored claims are appended as-is, duplicates included.
func Assemble(email string, stored model.ClaimSet) model.ClaimSet {
	set := make(model.ClaimSet, 0, len(stored)+2)
	set = append(set,
		model.Claim{Type: model.ClaimTypeEmail, Value: email},
		model.Claim{Type: model.ClaimTypeGivenName, Value: model.UsernameFromEmail(email)},
	)
	return append(set, stored...)
}
