package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/bucketpos/internal/auth"
	"github.com/mmynk/bucketpos/internal/middleware"
	"github.com/mmynk/bucketpos/internal/settings"
	"github.com/mmynk/bucketpos/internal/storage/sqlite"
	"github.com/mmynk/bucketpos/pkg/api/apiconnect"
)

const testJWTSecret = "test-secret"

// testClients bundles one client per service against a single test server.
type testClients struct {
	buckets  apiconnect.BucketServiceClient
	members  apiconnect.MemberServiceClient
	catalog  apiconnect.CatalogServiceClient
	sales    apiconnect.SalesServiceClient
	auth     apiconnect.AuthServiceClient
	settings apiconnect.SettingsServiceClient
	jwt      *auth.JWTManager
}

// testAuthInterceptor returns a Connect interceptor that sets a test admin in the context.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			ctx = context.WithValue(ctx, middleware.UserIDKey, int64(1))
			ctx = context.WithValue(ctx, middleware.RoleKey, "admin")
			return next(ctx, req)
		}
	}
}

// setupTestServer creates a test server backed by a temporary SQLite database.
// The seeded admin account uses the password "admin".
func setupTestServer(t *testing.T, interceptors ...connect.Interceptor) *testClients {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	adminHash, err := hasher.Hash("admin")
	if err != nil {
		t.Fatalf("failed to hash admin password: %v", err)
	}

	store, err := sqlite.New(tmpFile.Name(), sqlite.WithSeedDefaults(false), sqlite.WithBootstrapAdmin(adminHash))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if len(interceptors) == 0 {
		interceptors = []connect.Interceptor{testAuthInterceptor()}
	}
	opts := connect.WithInterceptors(interceptors...)

	jwtManager := auth.NewJWTManager(testJWTSecret, time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := settings.Load(filepath.Join(t.TempDir(), "settings.yaml"), settings.Defaults(tmpFile.Name()))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewBucketServiceHandler(NewBucketService(store), opts))
	mux.Handle(apiconnect.NewMemberServiceHandler(NewMemberService(store, store), opts))
	mux.Handle(apiconnect.NewCatalogServiceHandler(NewCatalogService(store), opts))
	mux.Handle(apiconnect.NewSalesServiceHandler(NewSalesService(store), opts))
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(auth.NewPasswordAuthenticator(store, hasher), hasher, jwtManager, store, logger),
		opts,
	))
	mux.Handle(apiconnect.NewSettingsServiceHandler(NewSettingsService(manager), opts))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testClients{
		buckets:  apiconnect.NewBucketServiceClient(http.DefaultClient, server.URL),
		members:  apiconnect.NewMemberServiceClient(http.DefaultClient, server.URL),
		catalog:  apiconnect.NewCatalogServiceClient(http.DefaultClient, server.URL),
		sales:    apiconnect.NewSalesServiceClient(http.DefaultClient, server.URL),
		auth:     apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		settings: apiconnect.NewSettingsServiceClient(http.DefaultClient, server.URL),
		jwt:      jwtManager,
	}
}

// assertCode fails the test unless err carries the expected Connect code.
func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("Expected code %v, got %v (%v)", want, got, err)
	}
}
