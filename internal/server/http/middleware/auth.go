package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// HasAdminToken reports whether the request carries the shared admin
// bearer secret. Comparison is constant time.
func HasAdminToken(c *gin.Context, secret string) bool {
	token := extractBearer(c)
	if token == "" || secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}

// RequireAdmin rejects requests lacking the shared admin bearer secret
// before any handler runs.
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !HasAdminToken(c, secret) {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
