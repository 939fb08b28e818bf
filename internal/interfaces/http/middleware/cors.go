package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var baseAllowedHeaders = []string{
	"Content-Type",
	"Content-Length",
	"Accept-Encoding",
	"Accept",
	"Origin",
	"Cache-Control",
	"X-Requested-With",
	"X-Request-ID",
}

// CORS returns a Gin middleware for handling Cross-Origin Resource Sharing.
// extraHeaders are the configured credential and tenant headers.
func CORS(allowedOrigins []string, extraHeaders ...string) gin.HandlerFunc {
	allowHeaders := strings.Join(append(append([]string{}, baseAllowedHeaders...), extraHeaders...), ", ")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if allowed := getAllowedOrigin(origin, allowedOrigins); allowed != "" {
			c.Header("Access-Control-Allow-Origin", allowed)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Headers", allowHeaders)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")
		c.Header("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// getAllowedOrigin returns origin when it is whitelisted, otherwise ""
func getAllowedOrigin(origin string, allowedOrigins []string) string {
	if origin == "" {
		return ""
	}
	for _, allowedOrigin := range allowedOrigins {
		if allowedOrigin == "*" || origin == allowedOrigin {
			return origin
		}
	}
	return ""
}

// SecurityHeaders returns a middleware that sets security headers
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		c.Next()
	}
}
