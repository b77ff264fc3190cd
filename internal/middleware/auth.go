package middleware

import (
	"net/http"
	"strings"

	"storage-control-api/internal/auth"

	"github.com/gin-gonic/gin"
)

// bearerToken extracts the token from "Authorization: Bearer <token>".
// WebSocket clients in browsers cannot set headers, so ?token= is accepted as a fallback.
func bearerToken(c *gin.Context) string {
	if token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return c.Query("token")
}

// JWTAuthMiddleware validates the JWT token and stores the caller in the context
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization token is required",
			})
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		// Handlers scope storage namespaces by user_id
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)

		c.Next()
	}
}
