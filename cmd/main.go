package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/accounts-server/internal/api/grpc/context"
	"github.com/dtroode/accounts-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/accounts-server/internal/api/grpc/server"
	"github.com/dtroode/accounts-server/internal/config"
	"github.com/dtroode/accounts-server/internal/logger"
	"github.com/dtroode/accounts-server/internal/model"
	"github.com/dtroode/accounts-server/internal/policy"
	"github.com/dtroode/accounts-server/internal/repository/memory"
	"github.com/dtroode/accounts-server/internal/repository/postgres"
	"github.com/dtroode/accounts-server/internal/security"
	"github.com/dtroode/accounts-server/internal/server"
	"github.com/dtroode/accounts-server/internal/service"
	"github.com/dtroode/accounts-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.JWT.UsesDefaultSecret() && cfg.Database.Driver == config.DriverPostgres {
		logger.Warn("JWT_SECRET is the development default, set a real secret before serving persistent accounts")
	}

	hasher := security.NewHasher(cfg.Bcrypt.Cost)

	var directory model.UserDirectory
	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory user directory, data is lost on shutdown")
		directory = memory.NewDirectory(hasher)
	default:
		conn, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Fatal("failed to initialize storage", "error", err)
		}
		defer conn.Close()
		directory = postgres.NewDirectory(conn.DB, hasher)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience,
		token.WithIssuerValidation(cfg.JWT.ValidateIssuer),
		token.WithLifetimeValidation(cfg.JWT.ValidateLifetime),
	)

	engine, err := policy.NewEngine(ctx)
	if err != nil {
		logger.Fatal("failed to prepare authorization policies", "error", err)
	}

	ctxMgr := grpcctx.NewManager()
	tokenService := service.NewTokenService(tokenManager, tokenManager, logger)
	accountsService := service.NewAccounts(directory, tokenService, engine, ctxMgr, logger)

	if cfg.Bootstrap.Enabled() {
		creds := model.UserCredentials{Email: cfg.Bootstrap.Email, Password: cfg.Bootstrap.Password}
		if err := accountsService.BootstrapAdmin(ctx, creds); err != nil {
			logger.Fatal("failed to bootstrap administrator", "error", err)
		}
	}

	grpcServer := registerGRPCServer(logger, accountsService, tokenService, ctxMgr, fmt.Sprintf(":%s", cfg.GRPC.Port))
	sl := server.NewSecurityLayer(cfg.GRPC)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(grpcServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := grpcServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", grpcServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerGRPCServer(
	logger *logger.Logger,
	accountsService *service.Accounts,
	tokenService *service.TokenService,
	ctxMgr model.ContextManager,
	addr string,
) *grpcServer.GRPCServer {
	r := router.New(accountsService, tokenService, ctxMgr, logger)
	s := r.Register()

	reflection.Register(s)

	return grpcServer.NewGRPCServer(s, addr)
}
