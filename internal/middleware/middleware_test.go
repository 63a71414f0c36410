package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/bucketpos/internal/auth"
	"github.com/mmynk/bucketpos/internal/metrics"
	"github.com/mmynk/bucketpos/internal/models"
	"github.com/mmynk/bucketpos/pkg/api"
	"github.com/mmynk/bucketpos/pkg/api/apiconnect"
)

// stubSettings records the identity the interceptors put into the context.
type stubSettings struct {
	lastUserID int64
	lastRole   string
}

func (s *stubSettings) GetSettings(ctx context.Context, _ *connect.Request[api.GetSettingsRequest]) (*connect.Response[api.GetSettingsResponse], error) {
	s.lastUserID = GetUserID(ctx)
	return connect.NewResponse(&api.GetSettingsResponse{Settings: &api.Settings{Language: "de"}}), nil
}

func (s *stubSettings) UpdateSettings(ctx context.Context, req *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.UpdateSettingsResponse], error) {
	s.lastUserID = GetUserID(ctx)
	s.lastRole = GetRole(ctx)
	return connect.NewResponse(&api.UpdateSettingsResponse{Settings: req.Msg.Settings}), nil
}

func setupTestServer(t *testing.T, interceptors ...connect.Interceptor) (apiconnect.SettingsServiceClient, *stubSettings) {
	t.Helper()

	stub := &stubSettings{}
	path, handler := apiconnect.NewSettingsServiceHandler(stub, connect.WithInterceptors(interceptors...))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return apiconnect.NewSettingsServiceClient(http.DefaultClient, server.URL), stub
}

func tokenFor(t *testing.T, jwtManager *auth.JWTManager, user *models.User) string {
	t.Helper()
	token, err := jwtManager.Generate(user)
	require.NoError(t, err)
	return token
}

func updateRequest(token string) *connect.Request[api.UpdateSettingsRequest] {
	req := connect.NewRequest(&api.UpdateSettingsRequest{Settings: &api.Settings{Language: "en", Currency: "EUR"}})
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	client, stub := setupTestServer(t, RequireAuth(jwtManager, apiconnect.SettingsServiceGetSettingsProcedure))
	ctx := context.Background()

	t.Run("public procedure needs no token", func(t *testing.T) {
		_, err := client.GetSettings(ctx, connect.NewRequest(&api.GetSettingsRequest{}))
		require.NoError(t, err)
		assert.Equal(t, int64(0), stub.lastUserID)
	})

	t.Run("missing token is unauthenticated", func(t *testing.T) {
		_, err := client.UpdateSettings(ctx, updateRequest(""))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("malformed header is unauthenticated", func(t *testing.T) {
		req := updateRequest("")
		req.Header().Set("Authorization", "Token abc")
		_, err := client.UpdateSettings(ctx, req)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("token from another secret is rejected", func(t *testing.T) {
		other := auth.NewJWTManager("other-secret", time.Hour)
		_, err := client.UpdateSettings(ctx, updateRequest(tokenFor(t, other, &models.User{ID: 1, Role: "admin"})))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("valid token carries identity", func(t *testing.T) {
		token := tokenFor(t, jwtManager, &models.User{ID: 7, Username: "kasse", Role: "user"})
		_, err := client.UpdateSettings(ctx, updateRequest(token))
		require.NoError(t, err)
		assert.Equal(t, int64(7), stub.lastUserID)
		assert.Equal(t, "user", stub.lastRole)
	})
}

func TestRequireRole(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	client, _ := setupTestServer(t,
		RequireAuth(jwtManager),
		RequireRole("admin", apiconnect.SettingsServiceUpdateSettingsProcedure),
	)
	ctx := context.Background()

	clerk := tokenFor(t, jwtManager, &models.User{ID: 2, Username: "kasse", Role: "user"})
	admin := tokenFor(t, jwtManager, &models.User{ID: 1, Username: "admin", Role: "admin"})

	_, err := client.UpdateSettings(ctx, updateRequest(clerk))
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

	_, err = client.UpdateSettings(ctx, updateRequest(admin))
	assert.NoError(t, err)

	req := connect.NewRequest(&api.GetSettingsRequest{})
	req.Header().Set("Authorization", "Bearer "+clerk)
	_, err = client.GetSettings(ctx, req)
	assert.NoError(t, err, "unguarded procedures stay open to every role")
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2, apiconnect.SettingsServiceUpdateSettingsProcedure)
	client, _ := setupTestServer(t, limiter.Interceptor())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.UpdateSettings(ctx, updateRequest(""))
		require.NoError(t, err)
	}
	_, err := client.UpdateSettings(ctx, updateRequest(""))
	assert.Equal(t, connect.CodeResourceExhausted, connect.CodeOf(err))

	for i := 0; i < 5; i++ {
		_, err := client.GetSettings(ctx, connect.NewRequest(&api.GetSettingsRequest{}))
		require.NoError(t, err, "only the listed procedures are throttled")
	}
}

func TestRateLimiterIsPerPeer(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1)
	assert.True(t, limiter.Allow("10.0.0.1:5000"))
	assert.False(t, limiter.Allow("10.0.0.1:5000"))
	assert.True(t, limiter.Allow("10.0.0.2:5000"))

	assert.Equal(t, "10.0.0.1", peerHost("10.0.0.1:5000"))
	assert.Equal(t, "::1", peerHost("[::1]:5000"))
	assert.Equal(t, "pipe", peerHost("pipe"))
}

func TestRateLimiterKeepsThrottledPeersWhenFull(t *testing.T) {
	limiter := NewRateLimiter(0.001, 3)
	limiter.maxPeers = 4

	for i := 0; i < 3; i++ {
		require.True(t, limiter.Allow("10.0.0.1"))
	}
	require.False(t, limiter.Allow("10.0.0.1"))

	for i := 2; i < 50; i++ {
		assert.True(t, limiter.Allow(fmt.Sprintf("10.0.1.%d", i)))
	}

	assert.LessOrEqual(t, len(limiter.limiters), 4)
	assert.False(t, limiter.Allow("10.0.0.1"), "new peers must not reset an exhausted one")
}

func TestRateLimiterDropsRefilledPeersFirst(t *testing.T) {
	limiter := NewRateLimiter(1000, 1)
	limiter.maxPeers = 2

	require.True(t, limiter.Allow("10.0.0.1"))
	require.True(t, limiter.Allow("10.0.0.2"))
	time.Sleep(5 * time.Millisecond)

	require.True(t, limiter.Allow("10.0.0.3"))
	assert.Len(t, limiter.limiters, 1)
}

func TestLoggingInterceptorSetsRequestID(t *testing.T) {
	client, _ := setupTestServer(t, LoggingInterceptor())
	ctx := context.Background()

	resp, err := client.GetSettings(ctx, connect.NewRequest(&api.GetSettingsRequest{}))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header().Get(RequestIDHeader))

	req := connect.NewRequest(&api.GetSettingsRequest{})
	req.Header().Set(RequestIDHeader, "till-42")
	resp, err = client.GetSettings(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "till-42", resp.Header().Get(RequestIDHeader))
}

func TestMetricsInterceptor(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	client, _ := setupTestServer(t, MetricsInterceptor(), RequireAuth(jwtManager))
	ctx := context.Background()

	_, err := client.UpdateSettings(ctx, updateRequest(""))
	require.Error(t, err)

	got, err := testutil.GatherAndCount(metrics.Registry, "bucketpos_rpc_requests_total")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got, 1)
}
