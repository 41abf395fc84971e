package model

// Claim types emitted into tokens and stored in the directory.
const (
	ClaimTypeEmail     = "email"
	ClaimTypeGivenName = "given_name"
	ClaimTypeRole      = "role"
)

// RoleAdmin is the value of the role claim that grants administrative access.
const RoleAdmin = "admin"

// AdminRoleClaim is the claim checked by the RequireAdminRole policy.
var AdminRoleClaim = Claim{Type: ClaimTypeRole, Value: RoleAdmin}

// Claim is a typed assertion about a user.
type Claim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ClaimSet is an unordered collection of claims. Duplicates are preserved.
type ClaimSet []Claim

// Contains reports whether the set holds at least one claim equal to c.
func (s ClaimSet) Contains(c Claim) bool {
	for _, claim := range s {
		if claim == c {
			return true
		}
	}
	return false
}

// Values returns the values of all claims of the given type in set order.
func (s ClaimSet) Values(claimType string) []string {
	var values []string
	for _, claim := range s {
		if claim.Type == claimType {
			values = append(values, claim.Value)
		}
	}
	return values
}
