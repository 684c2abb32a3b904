package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/superplace/growth-report-api/internal/models"
	appErrors "github.com/superplace/growth-report-api/pkg/errors"
	"github.com/superplace/growth-report-api/pkg/response"
)

// RequireRoles restricts a route to the listed roles. It must run after
// JWT, which seeds the claims.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims := claimsValue.(*models.JWTClaims)
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
