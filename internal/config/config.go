package config

import (
	"os"
	"strconv"
	"time"

	"rps_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort   string
	JWTSecret string
	StaticDir string

	AllowedOrigin string

	LogLevel string
	LogJSON  bool

	// Redis is optional; rate limiting falls back to memory without it
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// SessionTTL is an idle timeout; TokenTTL is the absolute token lifetime
	SessionTTL     time.Duration
	SessionCleanup time.Duration
	TokenTTL       time.Duration
	APIRateLimit   int
	APIRateWindow  time.Duration
	PickRateLimit  int
	PickRateWindow time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	return &Config{
		AppPort:        envString("APP_PORT", "8080"),
		JWTSecret:      jwtSecret,
		StaticDir:      envString("STATIC_DIR", "../frontend"),
		AllowedOrigin:  os.Getenv("ALLOWED_ORIGIN"),
		LogLevel:       envString("LOG_LEVEL", "info"),
		LogJSON:        os.Getenv("LOG_JSON") == "true",
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        envInt("REDIS_DB", 0),
		SessionTTL:     time.Duration(envPositive("SESSION_TTL_MINUTES", 60)) * time.Minute,
		SessionCleanup: time.Duration(envPositive("SESSION_CLEANUP_MINUTES", 10)) * time.Minute,
		TokenTTL:       time.Duration(envPositive("TOKEN_TTL_HOURS", 24)) * time.Hour,
		APIRateLimit:   envPositive("API_RATE_LIMIT", 60),
		APIRateWindow:  time.Duration(envPositive("API_RATE_WINDOW_SECONDS", 60)) * time.Second,
		PickRateLimit:  envPositive("PICK_RATE_LIMIT", 60),
		PickRateWindow: time.Duration(envPositive("PICK_RATE_WINDOW_SECONDS", 60)) * time.Second,
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		logger.Warn("ignoring invalid config value", "key", key, "value", v)
		return def
	}
	return n
}

// envPositive is envInt for limits and durations where zero makes no sense.
func envPositive(key string, def int) int {
	if n := envInt(key, def); n > 0 {
		return n
	}
	return def
}
