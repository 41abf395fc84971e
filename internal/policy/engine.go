// Package policy evaluates named authorization policies against claim sets
// using an embedded Rego module.
package policy

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/dtroode/accounts-server/internal/model"
)

//go:embed authz.rego
var authzModule string

var queries = map[model.PolicyName]string{
	model.PolicyRequireAdminRole: "data.accounts.authz.require_admin_role",
}

var _ model.Authorizer = (*Engine)(nil)

// Engine holds one prepared query per known policy.
type Engine struct {
	prepared map[model.PolicyName]rego.PreparedEvalQuery
}

// NewEngine compiles the authorization module and prepares its queries.
func NewEngine(ctx context.Context) (*Engine, error) {
	prepared := make(map[model.PolicyName]rego.PreparedEvalQuery, len(queries))
	for name, query := range queries {
		pq, err := rego.New(
			rego.Query(query),
			rego.Module("authz.rego", authzModule),
		).PrepareForEval(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare policy %s: %w", name, err)
		}
		prepared[name] = pq
	}

	return &Engine{prepared: prepared}, nil
}

// Authorize reports whether claims satisfy the named policy.
// An unknown policy is an error and must be treated as a denial.
func (e *Engine) Authorize(ctx context.Context, claims model.ClaimSet, policy model.PolicyName) (bool, error) {
	pq, ok := e.prepared[policy]
	if !ok {
		return false, fmt.Errorf("%w: %s", model.ErrUnknownPolicy, policy)
	}

	rs, err := pq.Eval(ctx, rego.EvalInput(buildInput(claims)))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate policy %s: %w", policy, err)
	}

	return rs.Allowed(), nil
}

func buildInput(claims model.ClaimSet) map[string]interface{} {
	list := make([]interface{}, 0, len(claims))
	for _, c := range claims {
		list = append(list, map[string]interface{}{
			"type":  c.Type,
			"value": c.Value,
		})
	}
	return map[string]interface{}{"claims": list}
}
