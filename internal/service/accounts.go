package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/accounts-server/internal/claims"
	"github.com/dtroode/accounts-server/internal/logger"
	"github.com/dtroode/accounts-server/internal/model"
	"github.com/dtroode/accounts-server/internal/validation"
)

// Accounts implements registration, login and admin-role management.
type Accounts struct {
	directory      model.UserDirectory
	tokenService   *TokenService
	authorizer     model.Authorizer
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAccounts(
	directory model.UserDirectory,
	tokenService *TokenService,
	authorizer model.Authorizer,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Accounts {
	return &Accounts{
		directory:      directory,
		tokenService:   tokenService,
		authorizer:     authorizer,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates a user from creds and returns a token for it.
func (s *Accounts) Register(ctx context.Context, creds model.UserCredentials) (model.AuthenticationResponse, error) {
	username := creds.Username()
	s.logger.Debug("Accounts service: registering user",
		"username", username)

	if err := validation.Validate(creds); err != nil {
		s.logger.Info("Accounts service: registration rejected by validation",
			"username", username,
			"error", err.Error())
		return model.AuthenticationResponse{}, err
	}

	user, err := s.directory.CreateUser(ctx, username, creds.Email, creds.Password)
	if err != nil {
		var dirErr *model.DirectoryError
		if errors.As(err, &dirErr) {
			s.logger.Info("Accounts service: directory refused registration",
				"username", username,
				"reasons", dirErr.Reasons)
			return model.AuthenticationResponse{}, &model.RegistrationError{Reasons: model.ReasonsOf(err), Err: err}
		}
		s.logger.Error("Accounts service: failed to create user",
			"username", username,
			"error", err.Error())
		return model.AuthenticationResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	resp, err := s.issueFor(ctx, user, creds.Email)
	if err != nil {
		return model.AuthenticationResponse{}, err
	}

	s.logger.Info("Accounts service: user registered",
		"username", username,
		"user_id", user.ID)

	return resp, nil
}

// Login validates and verifies creds and returns a token carrying the user's claims.
// Unknown users and wrong passwords are reported identically.
func (s *Accounts) Login(ctx context.Context, creds model.UserCredentials) (model.AuthenticationResponse, error) {
	username := creds.Username()
	s.logger.Debug("Accounts service: login attempt",
		"username", username)

	if err := validation.Validate(creds); err != nil {
		s.logger.Info("Accounts service: login rejected by validation",
			"username", username,
			"error", err.Error())
		return model.AuthenticationResponse{}, err
	}

	if err := s.directory.VerifyPassword(ctx, username, creds.Password); err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrPasswordMismatch) {
			s.logger.Info("Accounts service: login failed",
				"username", username)
			return model.AuthenticationResponse{}, model.ErrAuthenticationFailed
		}
		s.logger.Error("Accounts service: failed to verify password",
			"username", username,
			"error", err.Error())
		return model.AuthenticationResponse{}, fmt.Errorf("failed to verify password: %w", err)
	}

	user, err := s.directory.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Error("Accounts service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return model.AuthenticationResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	resp, err := s.issueFor(ctx, user, creds.Email)
	if err != nil {
		return model.AuthenticationResponse{}, err
	}

	s.logger.Info("Accounts service: user logged in",
		"username", username,
		"user_id", user.ID)

	return resp, nil
}

// issueFor signs the stored claims of user together with the identity claims derived from email.
func (s *Accounts) issueFor(ctx context.Context, user model.UserIdentity, email string) (model.AuthenticationResponse, error) {
	stored, err := s.directory.GetClaims(ctx, user)
	if err != nil {
		s.logger.Error("Accounts service: failed to get claims",
			"user_id", user.ID,
			"error", err.Error())
		return model.AuthenticationResponse{}, fmt.Errorf("failed to get claims: %w", err)
	}

	return s.tokenService.Issue(ctx, claims.Assemble(email, stored))
}

// ListUsers returns every user ordered by username. Requires the admin role.
func (s *Accounts) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	if err := s.authorize(ctx, model.PolicyRequireAdminRole); err != nil {
		return nil, err
	}

	users, err := s.directory.ListUsersOrderedByUsername(ctx)
	if err != nil {
		s.logger.Error("Accounts service: failed to list users",
			"error", err.Error())
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	summaries := make([]model.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.Summary())
	}

	return summaries, nil
}

// GrantAdminRole adds the admin role claim to the user. Requires the admin role.
func (s *Accounts) GrantAdminRole(ctx context.Context, userID uuid.UUID) error {
	return s.mutateAdminRole(ctx, userID, s.directory.AddClaim, "granted")
}

// RevokeAdminRole removes the admin role claim from the user. Requires the admin role.
func (s *Accounts) RevokeAdminRole(ctx context.Context, userID uuid.UUID) error {
	return s.mutateAdminRole(ctx, userID, s.directory.RemoveClaim, "revoked")
}

type claimMutation func(ctx context.Context, user model.UserIdentity, claim model.Claim) error

func (s *Accounts) mutateAdminRole(ctx context.Context, userID uuid.UUID, mutate claimMutation, action string) error {
	if err := s.authorize(ctx, model.PolicyRequireAdminRole); err != nil {
		return err
	}

	user, err := s.directory.FindByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("%w: %s", model.ErrUserNotFound, userID)
	}
	if err != nil {
		s.logger.Error("Accounts service: failed to get user by id",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := mutate(ctx, user, model.AdminRoleClaim); err != nil {
		var dirErr *model.DirectoryError
		if errors.As(err, &dirErr) {
			return &model.ClaimMutationError{Reasons: model.ReasonsOf(err), Err: err}
		}
		s.logger.Error("Accounts service: failed to change admin role",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("failed to change admin role: %w", err)
	}

	s.logger.Info("Accounts service: admin role "+action,
		"user_id", userID,
		"username", user.Username)

	return nil
}

// authorize checks the caller's claims against policy. Any evaluation error denies.
func (s *Accounts) authorize(ctx context.Context, policy model.PolicyName) error {
	callerClaims, ok := s.contextManager.GetClaimsFromContext(ctx)
	if !ok {
		return model.ErrUnauthenticated
	}

	allowed, err := s.authorizer.Authorize(ctx, callerClaims, policy)
	if err != nil {
		s.logger.Error("Accounts service: policy evaluation failed",
			"policy", policy,
			"error", err.Error())
		return fmt.Errorf("%w: %w", model.ErrForbidden, err)
	}
	if !allowed {
		s.logger.Info("Accounts service: access denied",
			"policy", policy,
			"email", callerClaims.Values(model.ClaimTypeEmail))
		return model.ErrForbidden
	}

	return nil
}

// BootstrapAdmin makes sure a user with creds exists and holds the admin role.
// It is run once at startup and bypasses the policy check.
func (s *Accounts) BootstrapAdmin(ctx context.Context, creds model.UserCredentials) error {
	if err := validation.Validate(creds); err != nil {
		return fmt.Errorf("invalid bootstrap admin credentials: %w", err)
	}

	username := creds.Username()
	user, err := s.directory.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		user, err = s.directory.CreateUser(ctx, username, creds.Email, creds.Password)
	}
	if err != nil {
		return fmt.Errorf("failed to ensure bootstrap admin: %w", err)
	}

	if err := s.directory.AddClaim(ctx, user, model.AdminRoleClaim); err != nil {
		return fmt.Errorf("failed to grant bootstrap admin role: %w", err)
	}

	s.logger.Info("Accounts service: bootstrap admin ready",
		"username", username,
		"user_id", user.ID)

	return nil
}
