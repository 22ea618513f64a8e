package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "debentra/internal/errors"
	"debentra/internal/models"
	"debentra/internal/rbac"
)

// RequirePermission gates a route on the role-permission matrix. Must run
// after AuthMiddleware so the actor role is on the context. Mutating routes
// are gated here, before any service entry point runs.
func RequirePermission(module rbac.Module, action rbac.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("actorRole")
		roleStr, ok := role.(string)
		if !ok || !rbac.Can(models.Role(roleStr), module, action) {
			appErr := apperrors.ErrForbidden
			c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
				"error": gin.H{"code": appErr.Code, "message": appErr.Message},
			})
			return
		}
		c.Next()
	}
}
