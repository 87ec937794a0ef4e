// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mnstudio/quote-studio/internal/adapters/clients"
	"github.com/mnstudio/quote-studio/internal/adapters/clients/acl"
	"github.com/mnstudio/quote-studio/internal/adapters/http"
	"github.com/mnstudio/quote-studio/internal/adapters/http/handlers"
	"github.com/mnstudio/quote-studio/internal/adapters/store"
	"github.com/mnstudio/quote-studio/internal/app"
	"github.com/mnstudio/quote-studio/internal/domain"
	"github.com/mnstudio/quote-studio/internal/platform/config"
	"github.com/mnstudio/quote-studio/internal/platform/logging"
	"github.com/mnstudio/quote-studio/internal/platform/telemetry"
	"github.com/mnstudio/quote-studio/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 6. Open the device-local store
	kv, closeStore, err := openStore(&cfg.Store, healthRegistry)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer closeStore()

	// 7. Create the identity provider when Google sign-in is configured
	provider, err := googleProvider(cfg, healthRegistry, logger)
	if err != nil {
		return err
	}

	// 8. Create application services
	identityService := app.NewIdentity(app.IdentityConfig{
		Store:      kv,
		Provider:   provider,
		AdminEmail: cfg.Auth.AdminEmail,
		Latency:    cfg.Auth.SimulatedLatency,
		Logger:     logger,
	})

	collection := app.NewCollection(app.CollectionConfig{
		Store:      kv,
		Logger:     logger,
		Engagement: telemetry.NewEngagement(prometheus.DefaultRegisterer),
		Seed:       app.SeedQuotes(),
	})

	// The collection tracks identity changes: sign-in loads the
	// identity's interaction sets, sign-out clears them.
	identityService.OnChange(func(identity *domain.Identity) {
		collection.SetIdentity(ctx, identity)
	})

	// Resume a persisted session, if any
	identityService.Restore(ctx)

	// 9. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	quotesHandler := handlers.NewQuotesHandler(collection, logger)
	authHandler := handlers.NewAuthHandler(identityService, logger)

	// 10. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 11. Setup router with all middleware and routes
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:    logger,
		AppConfig: &cfg.App,
		Identity:  identityService,
		Quotes:    quotesHandler,
		Auth:      authHandler,
		Health:    healthHandler,
	})

	// 12. Start server (non-blocking)
	serverErr := server.Start()

	// 13. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// openStore opens the configured key-value store and registers its health
// check. The returned func releases the store on shutdown.
func openStore(cfg *config.StoreConfig, registry *ports.HealthRegistry) (ports.KeyValueStore, func(), error) {
	if cfg.Driver == "memory" {
		mem := store.NewMemory()

		if err := registry.Register(mem); err != nil {
			return nil, nil, err
		}

		return mem, func() {}, nil
	}

	sqlite, err := store.OpenSQLite(cfg.Path)
	if err != nil {
		return nil, nil, err
	}

	if err := registry.Register(sqlite); err != nil {
		_ = sqlite.Close()
		return nil, nil, err
	}

	closer := func() {
		if closeErr := sqlite.Close(); closeErr != nil {
			slog.Default().Error("closing store", slog.Any("error", closeErr))
		}
	}

	return sqlite, closer, nil
}

// googleProvider builds the Google sign-in adapter when a real client ID
// is configured. Returns nil otherwise; the identity service then reports
// provider sign-in as unavailable.
func googleProvider(cfg *config.Config, registry *ports.HealthRegistry, logger *slog.Logger) (ports.IdentityProvider, error) {
	if !cfg.Auth.Google.Configured() {
		logger.Info("google sign-in not configured, provider sign-in disabled")
		return nil, nil
	}

	httpClient, err := clients.New(&clients.Config{
		ServiceName: "google-signin",
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	google := acl.NewGoogleIdentity(acl.GoogleIdentityConfig{
		Client:       httpClient,
		ClientID:     cfg.Auth.Google.ClientID,
		TokenInfoURL: cfg.Auth.Google.TokenInfoURL,
		AdminEmail:   cfg.Auth.AdminEmail,
		Logger:       logger,
	})

	if err := registry.Register(google); err != nil {
		return nil, fmt.Errorf("registering google health check: %w", err)
	}

	return google, nil
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
