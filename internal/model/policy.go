package model

import "context"

// PolicyName identifies an authorization policy.
type PolicyName string

// PolicyRequireAdminRole is satisfied by claim sets holding AdminRoleClaim.
const PolicyRequireAdminRole PolicyName = "RequireAdminRole"

// Authorizer evaluates named policies against a claim set.
type Authorizer interface {
	Authorize(ctx context.Context, claims ClaimSet, policy PolicyName) (bool, error)
}
