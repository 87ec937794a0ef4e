package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/mnstudio/quote-studio/internal/adapters/http/handlers"
	"github.com/mnstudio/quote-studio/internal/adapters/http/middleware"
	"github.com/mnstudio/quote-studio/internal/app"
	"github.com/mnstudio/quote-studio/internal/platform/config"
	"github.com/mnstudio/quote-studio/internal/platform/telemetry"
)

// RouterConfig contains everything needed to wire the routes.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// Identity resolves the signed-in identity for the gated routes.
	Identity *app.Identity

	// Quotes handles the collection endpoints.
	Quotes *handlers.QuotesHandler

	// Auth handles the identity endpoints.
	Auth *handlers.AuthHandler

	// Health handles the internal probe endpoints.
	Health *handlers.HealthHandler
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. OpenTelemetry - tracing and metrics
//  4. Trace header - expose the trace ID on responses
//  5. Logging - request logging (skips health endpoints)
//
// Route groups:
//   - /-/ (internal): health probes and metrics, no auth
//   - /api/v1/ (public API): collection and identity endpoints
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		telemetry.Middleware(cfg.AppConfig.Name),
		telemetry.TraceHeader(),
		middleware.Logging(cfg.Logger),
	)

	if cfg.Health != nil {
		cfg.Health.RegisterHealthRoutes(engine)
	}

	apiV1 := engine.Group("/api/v1")

	if cfg.Quotes != nil {
		cfg.Quotes.RegisterQuoteRoutes(apiV1, cfg.Identity)
	}

	if cfg.Auth != nil {
		cfg.Auth.RegisterAuthRoutes(apiV1)
	}
}
