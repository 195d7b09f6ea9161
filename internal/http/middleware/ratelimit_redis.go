package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"rps_webapp/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedisRateLimiter initializes a shared Redis client used by the middleware.
// Provide addr (host:port), password and db index. If connection fails, redisClient remains nil
// and the limiters fall back to memory.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		logger.Info("redis not configured, using in-memory rate limiting")
		return
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping failed, using in-memory rate limiting", "addr", addr, "error", err)
		_ = client.Close()
		return
	}
	redisClient = client
	logger.Info("redis rate limiter connected", "addr", addr)
}

// RedisEnabled reports whether a Redis client is configured.
func RedisEnabled() bool {
	return redisClient != nil
}

// PingRedis checks the shared client; nil when Redis is not configured.
func PingRedis(ctx context.Context) error {
	if redisClient == nil {
		return nil
	}
	return redisClient.Ping(ctx).Err()
}

// CloseRedis releases the shared client.
func CloseRedis() {
	if redisClient != nil {
		_ = redisClient.Close()
		redisClient = nil
	}
}

// RateLimit uses Redis when available and an in-memory window otherwise.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	if redisClient == nil {
		return SimpleRateLimit(maxRequests, window)
	}
	return RedisRateLimit(maxRequests, window)
}

// RedisRateLimit implements a simple fixed-window rate limiter using Redis INCR/EXPIRE.
// key format: rl:<window_seconds>:<identifier>
func RedisRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()
		if !allowRedis(c, key, maxRequests, window, "X-RateLimit") {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}

// allowRedis increments key and reports whether the request fits the window.
// Redis errors fail open.
func allowRedis(c *gin.Context, key string, maxRequests int, window time.Duration, headerPrefix string) bool {
	ctx := c.Request.Context()

	val, err := redisClient.Incr(ctx, key).Result()
	if err != nil {
		c.Header(headerPrefix+"-Error", "redis-error")
		logger.Warn("rate limiter redis error", "key", key, "error", err)
		return true
	}

	if val == 1 {
		redisClient.Expire(ctx, key, window)
	}

	c.Header(headerPrefix+"-Limit", strconv.Itoa(maxRequests))
	c.Header(headerPrefix+"-Remaining", strconv.FormatInt(max(0, int64(maxRequests)-val), 10))

	return val <= int64(maxRequests)
}
