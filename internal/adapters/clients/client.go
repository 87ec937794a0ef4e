// Package clients provides outbound HTTP clients for external services.
package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mnstudio/quote-studio/internal/platform/config"
)

// Config configures an HTTP client instance.
type Config struct {
	// ServiceName identifies the downstream service for logging.
	ServiceName string

	// Timeout is the per-attempt request timeout.
	// Total wall-clock time may exceed this value due to retries.
	Timeout time.Duration

	// Retry configures retry behavior.
	Retry config.RetryConfig

	// Logger is an optional logger. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Client is an HTTP client with bounded retry for transient failures.
// Network errors and 5xx responses are retried with exponential backoff;
// 4xx responses are returned immediately since retrying cannot help.
type Client struct {
	http        *http.Client
	serviceName string
	retry       config.RetryConfig
	logger      *slog.Logger
}

// New creates a new client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	retry := cfg.Retry
	if retry.MaxAttempts <= 0 {
		retry.MaxAttempts = 1
	}

	return &Client{
		http:        &http.Client{Timeout: cfg.Timeout},
		serviceName: cfg.ServiceName,
		retry:       retry,
		logger:      logger,
	}, nil
}

// Get performs a GET request against url, retrying transient failures.
// The caller owns the response body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	var lastErr error

	interval := c.retry.InitialInterval

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(interval):
			}

			interval *= 2
			if c.retry.MaxInterval > 0 && interval > c.retry.MaxInterval {
				interval = c.retry.MaxInterval
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err

			c.logger.WarnContext(ctx, "request attempt failed",
				slog.String("service", c.serviceName),
				slog.Int("attempt", attempt),
				slog.Any("error", err),
			)

			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("server error: %s", resp.Status)
			_ = resp.Body.Close()

			c.logger.WarnContext(ctx, "request attempt failed",
				slog.String("service", c.serviceName),
				slog.Int("attempt", attempt),
				slog.Int("status", resp.StatusCode),
			)

			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("%s: all %d attempts failed: %w",
		c.serviceName, c.retry.MaxAttempts, lastErr)
}
