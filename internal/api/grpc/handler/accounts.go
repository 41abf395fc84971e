package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/dtroode/accounts-server/internal/api/grpc/accountsv1"
	"github.com/dtroode/accounts-server/internal/logger"
	"github.com/dtroode/accounts-server/internal/model"
)

// AccountsService defines the account operations exposed over gRPC.
type AccountsService interface {
	Register(ctx context.Context, creds model.UserCredentials) (model.AuthenticationResponse, error)
	Login(ctx context.Context, creds model.UserCredentials) (model.AuthenticationResponse, error)
	ListUsers(ctx context.Context) ([]model.UserSummary, error)
	GrantAdminRole(ctx context.Context, userID uuid.UUID) error
	RevokeAdminRole(ctx context.Context, userID uuid.UUID) error
}

var _ accountsv1.AccountsServer = (*Accounts)(nil)

// Accounts handles gRPC endpoints of the accounts.v1.Accounts service.
type Accounts struct {
	accountsService AccountsService
	logger          *logger.Logger
}

// NewAccounts creates a new Accounts handler.
func NewAccounts(accountsService AccountsService, logger *logger.Logger) *Accounts {
	return &Accounts{
		accountsService: accountsService,
		logger:          logger,
	}
}

// Register creates a user and returns its token.
func (h *Accounts) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	creds := credentialsFromStruct(req)
	h.logger.Debug("Accounts handler: processing register request",
		"email", creds.Email)

	resp, err := h.accountsService.Register(ctx, creds)
	if err != nil {
		h.logger.Info("Accounts handler: register failed",
			"email", creds.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	return authenticationToStruct(resp)
}

// Login authenticates a user and returns its token.
func (h *Accounts) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	creds := credentialsFromStruct(req)
	h.logger.Debug("Accounts handler: processing login request",
		"email", creds.Email)

	resp, err := h.accountsService.Login(ctx, creds)
	if err != nil {
		h.logger.Info("Accounts handler: login failed",
			"email", creds.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	return authenticationToStruct(resp)
}

// ListUsers returns all users ordered by username.
func (h *Accounts) ListUsers(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	users, err := h.accountsService.ListUsers(ctx)
	if err != nil {
		h.logger.Info("Accounts handler: list users failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	list := make([]interface{}, 0, len(users))
	for _, u := range users {
		list = append(list, map[string]interface{}{
			accountsv1.FieldID:       u.ID.String(),
			accountsv1.FieldUsername: u.Username,
			accountsv1.FieldEmail:    u.Email,
		})
	}

	out, err := structpb.NewStruct(map[string]interface{}{accountsv1.FieldUsers: list})
	if err != nil {
		h.logger.Error("Accounts handler: failed to encode users",
			"error", err.Error())
		return nil, status.Error(codes.Internal, "internal server error")
	}
	return out, nil
}

// AssignAdminRole grants the admin role to the user with the given id.
func (h *Accounts) AssignAdminRole(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	userID, err := uuid.Parse(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid user id")
	}

	if err := h.accountsService.GrantAdminRole(ctx, userID); err != nil {
		h.logger.Info("Accounts handler: assign admin role failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &emptypb.Empty{}, nil
}

// RemoveAdminRole revokes the admin role from the user with the given id.
func (h *Accounts) RemoveAdminRole(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	userID, err := uuid.Parse(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid user id")
	}

	if err := h.accountsService.RevokeAdminRole(ctx, userID); err != nil {
		h.logger.Info("Accounts handler: remove admin role failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &emptypb.Empty{}, nil
}

func credentialsFromStruct(req *structpb.Struct) model.UserCredentials {
	fields := req.GetFields()
	return model.UserCredentials{
		Email:    fields[accountsv1.FieldEmail].GetStringValue(),
		Password: fields[accountsv1.FieldPassword].GetStringValue(),
	}
}

func authenticationToStruct(resp model.AuthenticationResponse) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(map[string]interface{}{
		accountsv1.FieldToken:      resp.Token,
		accountsv1.FieldExpiration: resp.Expiration.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, status.Error(codes.Internal, "internal server error")
	}
	return out, nil
}
