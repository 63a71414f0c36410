package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/bucketpos/internal/auth"
	"github.com/mmynk/bucketpos/internal/config"
	"github.com/mmynk/bucketpos/internal/metrics"
	"github.com/mmynk/bucketpos/internal/middleware"
	"github.com/mmynk/bucketpos/internal/models"
	"github.com/mmynk/bucketpos/internal/service"
	"github.com/mmynk/bucketpos/internal/settings"
	"github.com/mmynk/bucketpos/internal/storage"
	"github.com/mmynk/bucketpos/internal/storage/sqlite"
	"github.com/mmynk/bucketpos/pkg/api/apiconnect"
	"github.com/mmynk/bucketpos/pkg/logging"
)

// bootstrapAdminPassword is the password of the admin account created on
// first start. Change it after logging in.
const bootstrapAdminPassword = "admin"

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	adminHash, err := hasher.Hash(bootstrapAdminPassword)
	if err != nil {
		return err
	}

	store, err := sqlite.New(cfg.DBPath,
		sqlite.WithSeedDefaults(cfg.SeedDefaults),
		sqlite.WithBootstrapAdmin(adminHash),
	)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	prefs := settings.Load(cfg.SettingsPath, settings.Defaults(cfg.DBPath))
	slog.Info("Settings loaded", "path", cfg.SettingsPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store, hasher)
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRate, cfg.LoginBurst, apiconnect.AuthServiceLoginProcedure)

	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.LoggingInterceptor(),
		loginLimiter.Interceptor(),
		middleware.RequireAuth(jwtManager, apiconnect.AuthServiceLoginProcedure),
		middleware.RequireRole(models.RoleAdmin,
			apiconnect.AuthServiceListUsersProcedure,
			apiconnect.AuthServiceSaveUserProcedure,
			apiconnect.AuthServiceDeleteUserProcedure,
			apiconnect.SettingsServiceUpdateSettingsProcedure,
		),
	)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(apiconnect.NewBucketServiceHandler(service.NewBucketService(store), interceptors))
	mux.Handle(apiconnect.NewMemberServiceHandler(service.NewMemberService(store, store), interceptors))
	mux.Handle(apiconnect.NewCatalogServiceHandler(service.NewCatalogService(store), interceptors))
	mux.Handle(apiconnect.NewSalesServiceHandler(service.NewSalesService(store), interceptors))
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, hasher, jwtManager, store, slog.Default()),
		interceptors,
	))
	mux.Handle(apiconnect.NewSettingsServiceHandler(service.NewSettingsService(prefs), interceptors))

	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", healthHandler(store))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler := h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", cfg.Addr(), "url", "http://localhost"+cfg.Addr())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// healthHandler reports 200 while the database answers.
func healthHandler(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			slog.Warn("Health check failed", "error", err)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms, "+middleware.RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
