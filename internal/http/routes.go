package http

import (
	"context"
	"os"

	"rps_webapp/internal/config"
	"rps_webapp/internal/http/handlers"
	"rps_webapp/internal/http/middleware"
	"rps_webapp/internal/service"
	"rps_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires the HTTP API, the WebSocket endpoint and the static
// front-end. It returns the hub so callers can start its cleanup loop.
func RegisterRoutes(r *gin.Engine, sessions *service.SessionService, cfg *config.Config, version string) *ws.Hub {
	h := handlers.NewHandler(sessions)

	var redisPing handlers.Pinger
	if middleware.RedisEnabled() {
		redisPing = middleware.PingRedis
	}
	healthHandler := handlers.NewHealthHandler(redisPing, sessions.Count, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	{
		v1.POST("/session", h.CreateSession)
		v1.GET("/rules", h.Rules)

		round := v1.Group("/round")
		round.Use(middleware.JWT())
		round.GET("", h.State)
		round.POST("/pick", middleware.PickRateLimit(cfg.PickRateLimit, cfg.PickRateWindow), h.Pick)
		round.POST("/restart", h.Restart)
	}

	hub := ws.NewHub(sessions)
	r.GET("/ws", h.WS(hub, cfg.AllowedOrigin))

	// Frontend static files
	if cfg.StaticDir != "" {
		if _, err := os.Stat(cfg.StaticDir); err == nil {
			r.StaticFS("/assets", gin.Dir(cfg.StaticDir, false))
			r.NoRoute(func(c *gin.Context) {
				c.File(cfg.StaticDir + "/index.html")
			})
		}
	}

	return hub
}

// StartBackground launches the session and room sweepers until ctx ends.
func StartBackground(ctx context.Context, sessions *service.SessionService, hub *ws.Hub, cfg *config.Config) {
	sessions.StartCleanup(ctx, cfg.SessionCleanup, cfg.SessionTTL)
	hub.StartCleanup(ctx, cfg.SessionCleanup)
}
