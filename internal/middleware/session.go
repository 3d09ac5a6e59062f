package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireSession pulls the opaque per-device session id from the
// X-Session-ID header. It is an identifier, not authentication: the
// value is never verified beyond being present.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader("X-Session-ID"))

		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-Session-ID header"})
			c.Abort()
			return
		}

		c.Set("sessionID", sessionID)
		c.Next()
	}
}
