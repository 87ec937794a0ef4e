package ports

import (
	"context"

	"github.com/mnstudio/quote-studio/internal/domain"
)

// IdentityProvider verifies credentials issued by an external sign-in
// provider and translates them into a domain identity.
//
// Implementations map provider failures to domain errors:
// a rejected credential is domain.ErrUnauthorized, an unreachable
// provider is domain.ErrUnavailable.
type IdentityProvider interface {
	// Verify checks the opaque credential with the provider and returns
	// the identity it attests to.
	Verify(ctx context.Context, credential string) (*domain.Identity, error)

	// Available reports whether the provider is configured and usable.
	// When false, callers fall back to local credential entry only.
	Available() bool
}
