package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders adds browser-facing security headers. The gateway only ever
// serves JSON, so the policy forbids rendering or embedding it outright.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// Responses are data, never documents
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("X-Frame-Options", "DENY")

		// Referrer Policy
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Hide server information
		c.Header("Server", "Storefront Gateway")

		c.Next()
	}
}
