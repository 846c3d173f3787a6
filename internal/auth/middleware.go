package auth

import (
	"net/http"
	"strings"

	"booknook-backend/internal/models"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth.identity"

// IdentityFrom returns the verified identity attached to the request,
// if any.
func IdentityFrom(c *gin.Context) (*models.Identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := val.(*models.Identity)
	return identity, ok
}

// RequireAuth verifies the bearer token and attaches the identity to the
// request. A nil verifier disables authentication (dev mode).
func RequireAuth(verifier *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAdmin rejects callers whose verified identity lacks the admin
// role. Must run after RequireAuth; with a nil verifier it is a no-op.
func RequireAdmin(verifier *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.Next()
			return
		}

		identity, ok := IdentityFrom(c)
		if !ok || !identity.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}

		c.Next()
	}
}
