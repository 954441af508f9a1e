package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/summercamp-api/internal/models"
	appErrors "github.com/noah-isme/summercamp-api/pkg/errors"
	"github.com/noah-isme/summercamp-api/pkg/response"
)

// RoleResolver looks up the persisted role for an email.
type RoleResolver interface {
	RoleByEmail(ctx context.Context, email string) (models.UserRole, error)
}

// RequireRole permits continuation only when the caller's persisted role
// matches the route requirement. The role is re-resolved on every request so
// an admin demotion takes effect immediately, at the cost of one lookup per
// guarded call. A lookup failure (including an unknown email) is treated as
// not matching any required role.
func RequireRole(resolver RoleResolver, required models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		role, err := resolver.RoleByEmail(c.Request.Context(), claims.Email)
		if err != nil || role != required {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "forbidden access"))
			c.Abort()
			return
		}

		c.Next()
	}
}
