package model

import "context"

// ContextManager stores the caller's validated claims in a request context.
type ContextManager interface {
	SetClaimsToContext(ctx context.Context, claims ClaimSet) context.Context
	GetClaimsFromContext(ctx context.Context) (ClaimSet, bool)
}
