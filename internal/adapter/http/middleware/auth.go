package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tharun69CS/EcoFinds/internal/auth"
	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
)

const identityKey = "authenticatedIdentity"

// RequireIdentity resolves the bearer credential on protected routes and
// aborts with 401 on any resolution failure. The three failure modes keep
// distinct messages so callers can tell them apart.
func RequireIdentity(resolver *auth.Resolver, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := resolver.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			message := "not authorized to access this route"
			switch {
			case errors.Is(err, auth.ErrMissingCredential):
				message = "authorization token is not provided"
			case errors.Is(err, auth.ErrInvalidCredential):
				message = "authorization token is invalid or expired"
			case errors.Is(err, auth.ErrUnknownIdentity):
				message = "user belonging to this token no longer exists"
			default:
				log.Error("RequireIdentity: resolution failed", "error", err.Error())
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": message,
			})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by RequireIdentity.
func IdentityFrom(c *gin.Context) (*auth.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*auth.Identity)
	return identity, ok
}
