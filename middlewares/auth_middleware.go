package middlewares

import (
	"net/http"

	"backend/models"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the session cookie into the canonical profile
// and rejects unauthenticated requests.
func AuthMiddleware(sessionSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := SessionProfile(c, sessionSecret)
		if profile == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set("uid", profile.ID)
		c.Next()
	}
}

// SessionProfile parses the session cookie without enforcing it, for
// routes like GET /api/user that answer anonymous callers too.
func SessionProfile(c *gin.Context, sessionSecret string) *models.CanonicalProfile {
	cookie, err := c.Cookie(utils.SessionCookieName)
	if err != nil || cookie == "" {
		return nil
	}
	profile, err := utils.ParseSessionToken(cookie, sessionSecret)
	if err != nil {
		return nil
	}
	return profile
}
