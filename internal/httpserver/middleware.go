package httpserver

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const profileKey = "profile"

// authMiddleware resolves the Bearer token to a profile and stores it in
// the request context. Requests without a valid token are rejected.
func authMiddleware(customers CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"statusCode": http.StatusUnauthorized, "message": "missing bearer token"})
			return
		}
		p, err := customers.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"statusCode": http.StatusUnauthorized, "message": "invalid or expired token"})
			return
		}
		c.Set(profileKey, p)
		c.Next()
	}
}

// adminMiddleware gates the admin surface behind a shared passkey header.
func adminMiddleware(passkey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if passkey == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"statusCode": http.StatusServiceUnavailable, "message": "admin access not configured"})
			return
		}
		got := c.GetHeader("X-Admin-Passkey")
		if subtle.ConstantTimeCompare([]byte(got), []byte(passkey)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"statusCode": http.StatusForbidden, "message": "invalid passkey"})
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
