package router

import (
	"context"
	"net"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/dtroode/accounts-server/internal/api/grpc/accountsv1"
	grpccontext "github.com/dtroode/accounts-server/internal/api/grpc/context"
	"github.com/dtroode/accounts-server/internal/mocks"
	"github.com/dtroode/accounts-server/internal/model"
	"github.com/dtroode/accounts-server/internal/policy"
	"github.com/dtroode/accounts-server/internal/repository/memory"
	"github.com/dtroode/accounts-server/internal/security"
	"github.com/dtroode/accounts-server/internal/service"
	"github.com/dtroode/accounts-server/internal/testutil"
	"github.com/dtroode/accounts-server/internal/token"
)

func TestRouter_Register(t *testing.T) {
	t.Parallel()

	ctxMgr := mocks.NewContextManager(t)
	lg := testutil.MakeNoopLogger()

	r := New(nil, nil, ctxMgr, lg)
	s := r.Register()
	require.NotNil(t, s)

	info := s.GetServiceInfo()
	require.Contains(t, info, accountsv1.ServiceName)
	assert.Len(t, info[accountsv1.ServiceName].Methods, 5)
}

func TestRequiresAuth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		want   bool
	}{
		{method: accountsv1.Accounts_Register_FullMethodName, want: false},
		{method: accountsv1.Accounts_Login_FullMethodName, want: false},
		{method: accountsv1.Accounts_ListUsers_FullMethodName, want: true},
		{method: accountsv1.Accounts_AssignAdminRole_FullMethodName, want: true},
		{method: accountsv1.Accounts_RemoveAdminRole_FullMethodName, want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()
			meta := interceptors.NewServerCallMeta(tt.method, nil, nil)
			assert.Equal(t, tt.want, requiresAuth(context.Background(), meta))
		})
	}
}

type testEnv struct {
	client    accountsv1.AccountsClient
	directory *memory.Directory
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	lg := testutil.MakeNoopLogger()
	directory := memory.NewDirectory(security.NewHasher(bcrypt.MinCost))
	engine, err := policy.NewEngine(context.Background())
	require.NoError(t, err)

	jwt := token.NewJWT("secret", "accounts-server", "accounts-api")
	tokenService := service.NewTokenService(jwt, jwt, lg)
	ctxManager := grpccontext.NewManager()
	accounts := service.NewAccounts(directory, tokenService, engine, ctxManager, lg)

	lis := bufconn.Listen(1 << 20)
	srv := New(accounts, tokenService, ctxManager, lg).Register()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return testEnv{client: accountsv1.NewAccountsClient(conn), directory: directory}
}

func credentials(t *testing.T, email, password string) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(map[string]interface{}{
		accountsv1.FieldEmail:    email,
		accountsv1.FieldPassword: password,
	})
	require.NoError(t, err)
	return s
}

func withBearer(resp *structpb.Struct) context.Context {
	tok := resp.GetFields()[accountsv1.FieldToken].GetStringValue()
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+tok)
}

func TestAccounts_EndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice, err := env.client.Register(ctx, credentials(t, "alice@example.com", "Abcde1!"))
	require.NoError(t, err)
	assert.NotEmpty(t, alice.GetFields()[accountsv1.FieldToken].GetStringValue())
	assert.NotEmpty(t, alice.GetFields()[accountsv1.FieldExpiration].GetStringValue())

	_, err = env.client.Register(ctx, credentials(t, "bob@x.com", "Secret1!"))
	require.NoError(t, err)

	t.Run("invalid password", func(t *testing.T) {
		_, err := env.client.Register(ctx, credentials(t, "carol@x.com", "short"))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("duplicate registration", func(t *testing.T) {
		_, err := env.client.Register(ctx, credentials(t, "alice@example.com", "Abcde1!"))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.client.Login(ctx, credentials(t, "alice@example.com", "Wrong1!"))
		st, _ := status.FromError(err)
		assert.Equal(t, codes.InvalidArgument, st.Code())
		assert.Equal(t, "Invalid login attempt!", st.Message())
	})

	t.Run("malformed login email", func(t *testing.T) {
		_, err := env.client.Login(ctx, credentials(t, "alice", "Abcde1!"))
		st, _ := status.FromError(err)
		assert.Equal(t, codes.InvalidArgument, st.Code())
		assert.NotEqual(t, "Invalid login attempt!", st.Message())
	})

	t.Run("no token", func(t *testing.T) {
		_, err := env.client.ListUsers(ctx, &emptypb.Empty{})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("garbage token", func(t *testing.T) {
		badCtx := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer nope")
		_, err := env.client.ListUsers(badCtx, &emptypb.Empty{})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("not an admin", func(t *testing.T) {
		_, err := env.client.ListUsers(withBearer(alice), &emptypb.Empty{})
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	root, err := env.directory.CreateUser(ctx, "root", "root@x.com", "Root1!")
	require.NoError(t, err)
	require.NoError(t, env.directory.AddClaim(ctx, root, model.AdminRoleClaim))

	rootLogin, err := env.client.Login(ctx, credentials(t, "root@x.com", "Root1!"))
	require.NoError(t, err)
	adminCtx := withBearer(rootLogin)

	bob, err := env.directory.FindByUsername(ctx, "bob")
	require.NoError(t, err)

	_, err = env.client.AssignAdminRole(adminCtx, wrapperspb.String(bob.ID.String()))
	require.NoError(t, err)

	listed, err := env.client.ListUsers(adminCtx, &emptypb.Empty{})
	require.NoError(t, err)
	users := listed.GetFields()[accountsv1.FieldUsers].GetListValue().GetValues()
	require.Len(t, users, 3)
	var names []string
	for _, u := range users {
		names = append(names, u.GetStructValue().GetFields()[accountsv1.FieldUsername].GetStringValue())
	}
	assert.Equal(t, []string{"alice", "bob", "root"}, names)

	bobLogin, err := env.client.Login(ctx, credentials(t, "bob@x.com", "Secret1!"))
	require.NoError(t, err)
	_, err = env.client.ListUsers(withBearer(bobLogin), &emptypb.Empty{})
	require.NoError(t, err)

	_, err = env.client.AssignAdminRole(adminCtx, wrapperspb.String("not-a-uuid"))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = env.client.RemoveAdminRole(adminCtx, wrapperspb.String("00000000-0000-0000-0000-000000000001"))
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = env.client.RemoveAdminRole(adminCtx, wrapperspb.String(bob.ID.String()))
	require.NoError(t, err)

	claims, err := env.directory.GetClaims(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, claims)
}
