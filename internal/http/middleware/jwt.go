package middleware

import (
	"net/http"
	"strings"

	"rps_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key holding the session id.
const SessionKey = "session_id"

// JWT requires "Authorization: Bearer <token>" and stores the session id.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		sid, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(SessionKey, sid)
		c.Next()
	}
}
