package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MethodAllowList maps request paths to the HTTP methods they advertise in
// CORS headers. Paths not listed fall back to GET, POST, OPTIONS.
type MethodAllowList map[string][]string

var defaultMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}

// CORS answers preflight requests with each endpoint's explicit method
// allow-list and stamps the response headers on every request.
func CORS(allow MethodAllowList) gin.HandlerFunc {
	return func(c *gin.Context) {
		methods := defaultMethods
		if m, ok := allow[c.Request.URL.Path]; ok {
			methods = m
		}

		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", strings.Join(methods, ", "))
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
