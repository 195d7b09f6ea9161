package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	start time.Time
	count int
}

// memoryWindow is a fixed-window counter keyed by an arbitrary identifier.
type memoryWindow struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
	max     int
	window  time.Duration
	now     func() time.Time
}

func newMemoryWindow(maxRequests int, window time.Duration) *memoryWindow {
	return &memoryWindow{
		clients: make(map[string]*clientInfo),
		max:     maxRequests,
		window:  window,
		now:     time.Now,
	}
}

// allow counts one request for key and returns the remaining budget.
func (m *memoryWindow) allow(key string) (bool, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	ci, ok := m.clients[key]
	if !ok || now.Sub(ci.start) > m.window {
		ci = &clientInfo{start: now}
		m.clients[key] = ci
	}
	ci.count++

	// drop expired entries now and then so the map does not grow forever
	if len(m.clients) > 10000 {
		for k, v := range m.clients {
			if now.Sub(v.start) > m.window {
				delete(m.clients, k)
			}
		}
	}

	remaining := m.max - ci.count
	if remaining < 0 {
		remaining = 0
	}
	return ci.count <= m.max, remaining
}

// SimpleRateLimit blocks clients that send more than maxRequests per window
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	mw := newMemoryWindow(maxRequests, window)

	return func(c *gin.Context) {
		ok, remaining := mw.allow(c.ClientIP())
		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !ok {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
