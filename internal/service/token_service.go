package service

import (
	"context"
	"fmt"

	"github.com/dtroode/accounts-server/internal/logger"
	"github.com/dtroode/accounts-server/internal/model"
)

// TokenService composes the token issuer and validator for the account
// operations and the transport authentication layer.
type TokenService struct {
	issuer    model.TokenIssuer
	validator model.TokenValidator
	logger    *logger.Logger
}

func NewTokenService(issuer model.TokenIssuer, validator model.TokenValidator, logger *logger.Logger) *TokenService {
	return &TokenService{issuer: issuer, validator: validator, logger: logger}
}

// Issue signs claims and returns the caller-facing authentication response.
func (s *TokenService) Issue(ctx context.Context, claims model.ClaimSet) (model.AuthenticationResponse, error) {
	token, err := s.issuer.Issue(claims)
	if err != nil {
		s.logger.Error("Token service: failed to issue token",
			"error", err.Error())
		return model.AuthenticationResponse{}, fmt.Errorf("failed to issue token: %w", err)
	}

	return model.AuthenticationResponse{
		Token:      token.SignedPayload,
		Expiration: token.ExpiresAt,
	}, nil
}

// GetClaims validates a bearer token and returns the claims it carries.
func (s *TokenService) GetClaims(ctx context.Context, token string) (model.ClaimSet, error) {
	tokenClaims, err := s.validator.Validate(token)
	if err != nil {
		s.logger.Debug("Token service: token rejected",
			"error", err.Error())
		return nil, err
	}

	return tokenClaims.Claims, nil
}
