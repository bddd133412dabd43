package middlewares

import (
	"context"
	"net/http"

	"bitbucket.org/mmdatafocus/duka_backend/config"
	"bitbucket.org/mmdatafocus/duka_backend/utils"
	"github.com/gin-gonic/gin"
)

// SessionMiddleware resolves the bearer token (if any) into the caller's
// user/shop id. Requests without a token pass through anonymous; handlers
// behind requireAuth reject them.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Request.Header.Get("token")
		if token == "" {
			c.Next()
			return
		}

		claims, err := utils.JwtValidate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		// When redis is configured the token must still be on the
		// allowlist; sign-out removes it there.
		if config.GetRedisDB() != nil {
			userId, exists, err := config.GetRedisValue("Token:" + token)
			if err != nil || !exists || userId != claims.UserId {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				c.Abort()
				return
			}
		}

		ctx := context.WithValue(c.Request.Context(), utils.ContextKeyToken, token)
		ctx = context.WithValue(ctx, utils.ContextKeyShopId, claims.UserId)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
