package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware gates the admin surface on the x-admin-token header.
// The check is a plain equality compare against the configured secret,
// matching the behavior this service replaces.
func AdminMiddleware(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminToken == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":   "admin_not_configured",
				"message": "ADMIN_TOKEN is not set",
			})
			return
		}
		if c.GetHeader("x-admin-token") != adminToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin token"})
			return
		}
		c.Next()
	}
}
