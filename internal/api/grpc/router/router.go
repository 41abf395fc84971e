package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/accounts-server/internal/api/grpc/accountsv1"
	"github.com/dtroode/accounts-server/internal/api/grpc/handler"
	"github.com/dtroode/accounts-server/internal/api/grpc/middleware"
	"github.com/dtroode/accounts-server/internal/logger"
	"github.com/dtroode/accounts-server/internal/model"
)

// publicMethods are served without a bearer token.
var publicMethods = map[string]struct{}{
	accountsv1.Accounts_Register_FullMethodName: {},
	accountsv1.Accounts_Login_FullMethodName:    {},
}

// Router represents a gRPC router for account operations.
// It manages gRPC service registration and middleware configuration.
type Router struct {
	accountsService handler.AccountsService
	tokenService    middleware.TokenService
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// New creates new gRPC Router instance.
//
// Parameters:
//   - accountsService: The account operations
//   - tokenService: Resolves bearer tokens into caller claims
//   - contextManager: Stores caller claims in request contexts
//   - logger: The logger for request logging
//
// Returns a pointer to the newly created Router instance.
func New(
	accountsService handler.AccountsService,
	tokenService middleware.TokenService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		accountsService: accountsService,
		tokenService:    tokenService,
		contextManager:  contextManager,
		logger:          logger,
	}
}

// requiresAuth reports whether the bearer interceptor applies to the call.
func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	_, public := publicMethods[c.FullMethod()]
	return !public
}

// Register builds the gRPC server with logging, panic recovery and
// authentication interceptors and registers the accounts service on it.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)
	recoveryOpt := recovery.WithRecoveryHandler(func(p any) error {
		r.logger.Error("gRPC handler panicked",
			"panic", p)
		return status.Error(codes.Internal, "internal server error")
	})

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoveryOpt),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	)

	s := grpc.NewServer(opts...)
	accountsv1.RegisterAccountsServer(s, handler.NewAccounts(r.accountsService, r.logger))

	return s
}
