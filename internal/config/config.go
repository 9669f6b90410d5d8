package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port      int
	LogLevel  string
	LogFormat string
	Env       string
	APIKey    string // empty disables request authentication

	// Simulation
	TickIntervalMs int    // real milliseconds per simulated hour at speed 1
	Location       string // environment dataset key
	DataDir        string // catalog configs and environment datasets

	// Persistence
	SaveDir         string // local snapshot directory
	SyncIntervalSec int    // background sync cadence
	RemoteURL       string // optional remote store base URL
	RemoteAPIKey    string
	PostgresDSN     string // optional Postgres snapshot store
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		Env:          getEnv("ENVIRONMENT", "dev"),
		APIKey:       getEnv("API_KEY", ""),
		Location:     getEnv("FARM_LOCATION", "parakou"),
		DataDir:      getEnv("DATA_DIR", "configs"),
		SaveDir:      getEnv("SAVE_DIR", "saves"),
		RemoteURL:    getEnv("REMOTE_SYNC_URL", ""),
		RemoteAPIKey: getEnv("REMOTE_SYNC_API_KEY", ""),
		PostgresDSN:  getEnv("POSTGRES_DSN", ""),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.TickIntervalMs, err = getEnvInt("TICK_INTERVAL_MS", 1000); err != nil {
		return nil, err
	}
	if cfg.SyncIntervalSec, err = getEnvInt("SYNC_INTERVAL_SEC", 120); err != nil {
		return nil, err
	}

	if cfg.TickIntervalMs <= 0 {
		return nil, fmt.Errorf("TICK_INTERVAL_MS must be positive, got %d", cfg.TickIntervalMs)
	}
	if cfg.RemoteURL != "" && cfg.RemoteAPIKey == "" {
		return nil, fmt.Errorf("REMOTE_SYNC_API_KEY must be set when REMOTE_SYNC_URL is configured")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}
