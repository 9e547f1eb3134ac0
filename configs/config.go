package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Port                 string
	Environment          string
	ForecastHorizonWeeks int
	MinTrainWeeks        int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		ForecastHorizonWeeks: getEnvInt("FORECAST_HORIZON_WEEKS", 5),
		MinTrainWeeks:        getEnvInt("MIN_TRAIN_WEEKS", 4),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
