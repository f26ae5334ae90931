package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration. It is loaded once at startup
// and injected explicitly; nothing reads the environment after Load returns.
type Config struct {
	// Server configuration
	Server struct {
		Port    string
		Env     string
		Timeout time.Duration
	}

	// Database configuration
	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
		MaxConns int
	}

	// Redis configuration
	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	// Auth configuration
	Auth struct {
		// VerifyURL is the external session-verification endpoint.
		VerifyURL string
		// SessionTTL is the fixed local session lifetime.
		SessionTTL time.Duration
		// SessionCacheTTL bounds the redis read-through cache.
		SessionCacheTTL time.Duration
	}

	// Provider API keys; an empty key marks the provider unavailable.
	Providers struct {
		OpenAIKey    string
		AnthropicKey string
		GeminiKey    string
		Timeout      time.Duration
	}

	// Security configuration
	Security struct {
		RateLimit      float64
		RateLimitBurst int
		AllowedOrigins []string
	}

	// Logging configuration
	Logging struct {
		Level  string
		Format string
	}

	// Cache settings for the in-process character cache.
	Cache struct {
		Enabled     bool
		TTL         time.Duration
		MaxSize     int
		PurgeWindow time.Duration
	}

	// Chat settings
	Chat struct {
		// HistoryTTL bounds how long per-conversation transcripts are
		// retained for gateway continuity.
		HistoryTTL time.Duration
		// HistoryLimit caps the number of turns replayed per call.
		HistoryLimit int
	}
}

// Load reads configuration from the environment (and .env if present).
func Load() *Config {
	godotenv.Load()

	cfg := &Config{}

	cfg.Server.Port = getEnvString("PORT", "8001")
	cfg.Server.Env = getEnvString("APP_ENV", "development")
	cfg.Server.Timeout = getEnvDuration("SERVER_TIMEOUT", 30*time.Second)

	cfg.Database.Host = getEnvString("DB_HOST", "localhost")
	cfg.Database.Port = getEnvString("DB_PORT", "5432")
	cfg.Database.User = getEnvString("DB_USER", "postgres")
	cfg.Database.Password = getEnvString("DB_PASSWORD", "postgres")
	cfg.Database.Name = getEnvString("DB_NAME", "character_chat")
	cfg.Database.SSLMode = getEnvString("DB_SSL_MODE", "disable")
	cfg.Database.MaxConns = getEnvInt("DB_MAX_CONNS", 20)

	cfg.Redis.Addr = getEnvString("REDIS_URL", "localhost:6379")
	cfg.Redis.Password = getEnvString("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.Auth.VerifyURL = getEnvString("AUTH_VERIFY_URL", "")
	cfg.Auth.SessionTTL = getEnvDuration("SESSION_TTL", 7*24*time.Hour)
	cfg.Auth.SessionCacheTTL = getEnvDuration("SESSION_CACHE_TTL", time.Minute)

	cfg.Providers.OpenAIKey = getEnvString("OPENAI_API_KEY", "")
	cfg.Providers.AnthropicKey = getEnvString("ANTHROPIC_API_KEY", "")
	cfg.Providers.GeminiKey = getEnvString("GEMINI_API_KEY", "")
	cfg.Providers.Timeout = getEnvDuration("PROVIDER_TIMEOUT", 60*time.Second)

	cfg.Security.RateLimit = float64(getEnvInt("RATE_LIMIT", 5))
	cfg.Security.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 10)
	cfg.Security.AllowedOrigins = getEnvStringSlice("ALLOWED_ORIGINS", []string{"*"})

	cfg.Logging.Level = getEnvString("LOG_LEVEL", "info")
	cfg.Logging.Format = getEnvString("LOG_FORMAT", "json")

	cfg.Cache.Enabled = getEnvBool("CACHE_ENABLED", true)
	cfg.Cache.TTL = getEnvDuration("CACHE_TTL", 5*time.Minute)
	cfg.Cache.MaxSize = getEnvInt("CACHE_MAX_SIZE", 1000)
	cfg.Cache.PurgeWindow = getEnvDuration("CACHE_PURGE_WINDOW", 10*time.Minute)

	cfg.Chat.HistoryTTL = getEnvDuration("CHAT_HISTORY_TTL", 24*time.Hour)
	cfg.Chat.HistoryLimit = getEnvInt("CHAT_HISTORY_LIMIT", 40)

	return cfg
}

// Helper functions to read environment variables with default values

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
