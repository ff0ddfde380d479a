package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port                 int
	DevMode              bool
	LogLevel             string
	FinnhubAPIKey        string
	FinnhubBaseURL       string
	SentimentServiceURL  string
	CacheCleanupSchedule string
	HealthProbeSchedule  string
	HealthProbeSymbol    string
	HistoryDays          int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnvAsInt("PORT", 8080),
		DevMode:              getEnvAsBool("DEV_MODE", false),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		FinnhubAPIKey:        getEnv("FINNHUB_API_KEY", ""),
		FinnhubBaseURL:       getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
		SentimentServiceURL:  getEnv("SENTIMENT_SERVICE_URL", ""),
		CacheCleanupSchedule: getEnv("CACHE_CLEANUP_SCHEDULE", "@every 5m"),
		HealthProbeSchedule:  getEnv("HEALTH_PROBE_SCHEDULE", "@every 15m"),
		HealthProbeSymbol:    getEnv("HEALTH_PROBE_SYMBOL", "SPY"),
		HistoryDays:          getEnvAsInt("HISTORY_DAYS", 90),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.FinnhubAPIKey == "" {
		return fmt.Errorf("FINNHUB_API_KEY is required")
	}

	// Note: sentiment service optional - news is returned without
	// sentiment scores when unset

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
