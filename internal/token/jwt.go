package token

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/accounts-server/internal/model"
)

// Tokens are valid for one calendar year from issuance.
const lifetimeYears = 1

// Registered claim names. They frame the token and are never treated as user claims.
var registeredClaims = map[string]struct{}{
	"iss": {}, "aud": {}, "exp": {}, "nbf": {}, "iat": {}, "jti": {}, "sub": {},
}

var (
	_ model.TokenIssuer    = (*JWT)(nil)
	_ model.TokenValidator = (*JWT)(nil)
)

// JWT issues and validates HS256 bearer tokens.
type JWT struct {
	secretKey        []byte
	issuer           string
	audience         string
	validateIssuer   bool
	validateLifetime bool
	now              func() time.Time
}

// Option configures a JWT.
type Option func(*JWT)

// WithIssuerValidation makes Validate reject tokens from another issuer.
func WithIssuerValidation(enabled bool) Option {
	return func(j *JWT) { j.validateIssuer = enabled }
}

// WithLifetimeValidation makes Validate reject expired tokens.
func WithLifetimeValidation(enabled bool) Option {
	return func(j *JWT) { j.validateLifetime = enabled }
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) { j.now = now }
}

// NewJWT creates a token manager signing with secretKey.
// Issuer and lifetime are not validated unless enabled through options.
func NewJWT(secretKey, issuer, audience string, opts ...Option) *JWT {
	j := &JWT{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		audience:  audience,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Issue signs claims into a token expiring one year from now.
func (j *JWT) Issue(claims model.ClaimSet) (model.AuthToken, error) {
	expiresAt := j.now().UTC().AddDate(lifetimeYears, 0, 0)

	payload := encodeClaims(claims)
	payload["iss"] = j.issuer
	payload["aud"] = j.audience
	payload["exp"] = jwt.NewNumericDate(expiresAt)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(j.secretKey)
	if err != nil {
		return model.AuthToken{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return model.AuthToken{SignedPayload: signed, ExpiresAt: expiresAt}, nil
}

// Validate verifies the signature and audience of tokenString and returns its claims.
func (j *JWT) Validate(tokenString string) (model.TokenClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	payload := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(tokenString, payload, func(t *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	})
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("%w: %w", model.ErrTokenInvalid, err)
	}
	if !token.Valid {
		return model.TokenClaims{}, model.ErrTokenInvalid
	}

	result, err := j.checkFraming(payload)
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("%w: %w", model.ErrTokenInvalid, err)
	}
	result.Claims = decodeClaims(payload)

	return result, nil
}

func (j *JWT) checkFraming(payload jwt.MapClaims) (model.TokenClaims, error) {
	var result model.TokenClaims

	aud, err := payload.GetAudience()
	if err != nil {
		return result, err
	}
	if !contains(aud, j.audience) {
		return result, fmt.Errorf("audience %v does not include %q", []string(aud), j.audience)
	}
	result.Audience = aud

	iss, err := payload.GetIssuer()
	if err != nil {
		return result, err
	}
	if j.validateIssuer && iss != j.issuer {
		return result, fmt.Errorf("unexpected issuer %q", iss)
	}
	result.Issuer = iss

	exp, err := payload.GetExpirationTime()
	if err != nil {
		return result, err
	}
	if exp != nil {
		result.ExpiresAt = exp.Time.UTC()
	}
	if j.validateLifetime {
		if exp == nil {
			return result, errors.New("token has no expiration")
		}
		if !j.now().Before(exp.Time) {
			return result, jwt.ErrTokenExpired
		}
	}

	return result, nil
}

// encodeClaims groups claims by type: one value becomes a string, several a list.
func encodeClaims(claims model.ClaimSet) jwt.MapClaims {
	grouped := make(map[string][]string)
	var order []string
	for _, c := range claims {
		if _, reserved := registeredClaims[c.Type]; reserved {
			continue
		}
		if _, seen := grouped[c.Type]; !seen {
			order = append(order, c.Type)
		}
		grouped[c.Type] = append(grouped[c.Type], c.Value)
	}

	payload := jwt.MapClaims{}
	for _, claimType := range order {
		values := grouped[claimType]
		if len(values) == 1 {
			payload[claimType] = values[0]
			continue
		}
		payload[claimType] = values
	}
	return payload
}

func decodeClaims(payload jwt.MapClaims) model.ClaimSet {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		if _, reserved := registeredClaims[k]; !reserved {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var set model.ClaimSet
	for _, k := range keys {
		switch v := payload[k].(type) {
		case []interface{}:
			for _, item := range v {
				set = append(set, model.Claim{Type: k, Value: stringify(item)})
			}
		default:
			set = append(set, model.Claim{Type: k, Value: stringify(v)})
		}
	}
	return set
}

func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
