// Package acl implements the Anti-Corruption Layer pattern for external
// services. ACL adapters translate between external API models and domain
// models, protecting the domain from external system changes.
package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mnstudio/quote-studio/internal/adapters/clients"
	"github.com/mnstudio/quote-studio/internal/domain"
)

// GoogleIdentityConfig contains configuration for the Google sign-in adapter.
type GoogleIdentityConfig struct {
	// Client is the HTTP client used to reach the tokeninfo endpoint.
	Client *clients.Client

	// ClientID is the OAuth client id credentials must be issued to.
	ClientID string

	// TokenInfoURL is the Google tokeninfo endpoint.
	TokenInfoURL string

	// AdminEmail is the address that receives the admin flag.
	AdminEmail string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// GoogleIdentity verifies Google ID-token credentials and translates them
// into domain identities. Implements ports.IdentityProvider.
type GoogleIdentity struct {
	client       *clients.Client
	clientID     string
	tokenInfoURL string
	adminEmail   string
	logger       *slog.Logger
}

// NewGoogleIdentity creates the adapter. Panics if Client is nil.
func NewGoogleIdentity(cfg GoogleIdentityConfig) *GoogleIdentity {
	if cfg.Client == nil {
		panic("GoogleIdentity: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &GoogleIdentity{
		client:       cfg.Client,
		clientID:     cfg.ClientID,
		tokenInfoURL: cfg.TokenInfoURL,
		adminEmail:   cfg.AdminEmail,
		logger:       logger,
	}
}

// tokenInfoResponse is the external DTO from the tokeninfo endpoint.
// This is an internal type - never exposed outside the ACL.
type tokenInfoResponse struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
	Audience string `json:"aud"`
}

// Available reports whether a usable client id is configured.
func (g *GoogleIdentity) Available() bool {
	return g.clientID != ""
}

// Verify checks the credential with Google and returns the identity it
// attests to. Implements ports.IdentityProvider.
func (g *GoogleIdentity) Verify(ctx context.Context, credential string) (*domain.Identity, error) {
	if !g.Available() {
		return nil, domain.NewUnavailableError("google-signin", "not configured")
	}

	endpoint := g.tokenInfoURL + "?id_token=" + url.QueryEscape(credential)

	resp, err := g.client.Get(ctx, endpoint)
	if err != nil {
		return nil, domain.NewUnavailableError("google-signin", err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// The endpoint answers 4xx for expired or malformed tokens.
		return nil, fmt.Errorf("%w: credential rejected (%s)",
			domain.ErrUnauthorized, resp.Status)
	}

	var info tokenInfoResponse

	err = json.NewDecoder(resp.Body).Decode(&info)
	if err != nil {
		return nil, domain.NewUnavailableError("google-signin",
			"malformed tokeninfo response: "+err.Error())
	}

	if info.Audience != g.clientID {
		return nil, fmt.Errorf("%w: credential issued to another client",
			domain.ErrUnauthorized)
	}

	g.logger.DebugContext(ctx, "verified provider credential",
		slog.String("subject", info.Subject),
	)

	return &domain.Identity{
		ID:        info.Subject,
		Email:     info.Email,
		Name:      info.Name,
		Avatar:    info.Picture,
		Admin:     info.Email == g.adminEmail,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Name implements ports.HealthChecker.
func (g *GoogleIdentity) Name() string {
	return "google-signin"
}

// Check implements ports.HealthChecker. The provider is considered
// healthy whenever it is configured; an actual round trip would burn
// quota on every probe.
func (g *GoogleIdentity) Check(_ context.Context) error {
	if !g.Available() {
		return domain.NewUnavailableError("google-signin", "not configured")
	}

	return nil
}
