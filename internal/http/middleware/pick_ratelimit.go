package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// PickRateLimit limits picks per session (not per IP).
// Requires JWT middleware to run before this.
func PickRateLimit(maxPicks int, window time.Duration) gin.HandlerFunc {
	var mw *memoryWindow
	if redisClient == nil {
		mw = newMemoryWindow(maxPicks, window)
	}

	return func(c *gin.Context) {
		sid := c.GetString(SessionKey)
		if sid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var ok bool
		if mw != nil {
			var remaining int
			ok, remaining = mw.allow(sid)
			c.Header("X-PickRateLimit-Limit", strconv.Itoa(maxPicks))
			c.Header("X-PickRateLimit-Remaining", strconv.Itoa(remaining))
		} else {
			key := "pick_rl:" + sid + ":" + strconv.FormatInt(int64(window.Seconds()), 10)
			ok = allowRedis(c, key, maxPicks, window, "X-PickRateLimit")
		}

		if !ok {
			RLBlocked.WithLabelValues("pick:" + c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "pick rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues("pick:" + c.FullPath()).Inc()
		c.Next()
	}
}
