package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Tip modes for the improvement tip.
const (
	TipModeDaily  = "daily"
	TipModeRandom = "random"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string
	LogSource bool

	// Database; an empty DatabaseURL selects SQLite at SQLitePath.
	DatabaseURL string
	SQLitePath  string

	// Redis day-state cache; disabled when RedisURL is empty.
	RedisURL        string
	CacheTTL        time.Duration
	BreakerFailures int
	BreakerTimeout  time.Duration

	// RabbitMQ event publishing; in-process only when empty.
	RabbitMQURL string

	// MCP
	MCPAddr      string
	MCPAuthToken string

	// HTTP API
	APIAddr string

	// Planner
	TipMode string
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		LogSource: getBoolEnv("LOG_SOURCE", false),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("DAYPLAN_SQLITE_PATH", ""),

		RedisURL:        getEnv("REDIS_URL", ""),
		CacheTTL:        getDurationEnv("DAYPLAN_CACHE_TTL", 24*time.Hour),
		BreakerFailures: getIntEnv("DAYPLAN_BREAKER_FAILURES", 3),
		BreakerTimeout:  getDurationEnv("DAYPLAN_BREAKER_TIMEOUT", 30*time.Second),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		MCPAddr:      getEnv("MCP_ADDR", "127.0.0.1:8082"),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", ""),

		APIAddr: getEnv("API_ADDR", "127.0.0.1:8080"),

		TipMode: getEnv("DAYPLAN_TIP_MODE", TipModeDaily),
	}

	if cfg.TipMode != TipModeRandom {
		cfg.TipMode = TipModeDaily
	}

	return cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesSQLite reports whether the local SQLite store is selected.
func (c *Config) UsesSQLite() bool {
	return c.DatabaseURL == ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
