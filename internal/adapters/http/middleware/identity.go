package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mnstudio/quote-studio/internal/adapters/http/dto"
	"github.com/mnstudio/quote-studio/internal/domain"
)

// ContextKeyIdentity is the gin context key holding the resolved identity.
const ContextKeyIdentity = "identity"

// IdentitySource resolves the signed-in identity, or nil.
type IdentitySource interface {
	Current() *domain.Identity
}

// RequireIdentity returns middleware that rejects requests while nobody is
// signed in. On success the identity is stored in the gin context for
// handlers further down the chain.
func RequireIdentity(source IdentitySource) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := source.Current()
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrorCodeUnauthorized,
				"sign in required",
			))

			return
		}

		c.Set(ContextKeyIdentity, identity)
		c.Next()
	}
}

// RequireAdmin returns middleware that rejects non-admin identities.
// Must run after RequireIdentity.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := Identity(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrorCodeUnauthorized,
				"sign in required",
			))

			return
		}

		if !identity.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.ErrorCodeForbidden,
				"admin privileges required",
			))

			return
		}

		c.Next()
	}
}

// Identity extracts the identity stored by RequireIdentity.
// Returns nil if the middleware did not run.
func Identity(c *gin.Context) *domain.Identity {
	value, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return nil
	}

	identity, ok := value.(*domain.Identity)
	if !ok {
		return nil
	}

	return identity
}
