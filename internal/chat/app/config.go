package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AssistantAPIKey  string // Required: API key for the hosted assistant service
	AssistantID      string // Required: id of the assistant to run
	AssistantBaseURL string // Optional: assistant API base URL (default: https://api.openai.com)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./chatgate.db)
	SeedInvite           bool          // Optional: mint a bootstrap invite when the user table is empty (default: true)
	SessionIdleWindow    time.Duration // Optional: session idle expiry (default: 168h)
	HistoryLimit         int           // Optional: messages replayed on session restore (default: 50)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadConfig reads configuration from the environment, after loading a local
// .env file when one exists. The assistant credentials are the only hard
// requirements; everything else has a workable default.
func LoadConfig() (Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		AssistantAPIKey:      os.Getenv("CHATGATE_ASSISTANT_API_KEY"),
		AssistantID:          os.Getenv("CHATGATE_ASSISTANT_ID"),
		AssistantBaseURL:     os.Getenv("CHATGATE_ASSISTANT_BASE_URL"), // empty means the client default
		DatabaseFile:         getEnvOrDefault("CHATGATE_DATABASE_FILE", "chatgate.db"),
		SeedInvite:           getEnvBoolOrDefault("CHATGATE_SEED_INVITE", true),
		SessionIdleWindow:    getEnvDurationOrDefault("CHATGATE_SESSION_IDLE_WINDOW", 7*24*time.Hour),
		HistoryLimit:         getEnvIntOrDefault("CHATGATE_HISTORY_LIMIT", 50),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.AssistantAPIKey == "" {
		return cfg, errors.New("CHATGATE_ASSISTANT_API_KEY is required")
	}
	if cfg.AssistantID == "" {
		return cfg, errors.New("CHATGATE_ASSISTANT_ID is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
