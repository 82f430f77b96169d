package middlewares

import (
	"net/http"
	"strings"

	"wellnessbuddy/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token issued on sign-in and puts the
// email claim on the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		email, err := utils.ParseJWT(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set("email", email)
		c.Next()
	}
}
