package context

import (
	"context"

	"github.com/dtroode/accounts-server/internal/model"
)

// claimsKey is the context key under which validated caller claims are stored.
type claimsKey struct{}

// Manager represents a gRPC context manager for caller claims.
// It provides methods to store and retrieve the claim set of an authenticated caller.
type Manager struct{}

var _ model.ContextManager = (*Manager)(nil)

// NewManager creates a new gRPC context manager instance.
//
// Returns a pointer to the newly created Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetClaimsToContext stores the caller's claims in the context.
// The claims are copied so later changes to the argument do not leak into the request.
//
// Parameters:
//   - ctx: The gRPC context
//   - claims: The validated claims of the caller
//
// Returns a new context carrying the claims.
func (m *Manager) SetClaimsToContext(ctx context.Context, claims model.ClaimSet) context.Context {
	stored := append(model.ClaimSet{}, claims...)
	return context.WithValue(ctx, claimsKey{}, stored)
}

// GetClaimsFromContext retrieves the caller's claims from the context.
//
// Parameters:
//   - ctx: The gRPC context
//
// Returns the claims and a boolean indicating if an authenticated caller was found.
func (m *Manager) GetClaimsFromContext(ctx context.Context) (model.ClaimSet, bool) {
	claims, ok := ctx.Value(claimsKey{}).(model.ClaimSet)
	if !ok {
		return nil, false
	}
	return claims, true
}
