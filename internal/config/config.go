package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBConn   string
	LogLevel string

	// ReadTimeout / WriteTimeout for the HTTP server, in seconds.
	ReadTimeoutSecs  int
	WriteTimeoutSecs int
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DBConn:           getEnv("DB_CONN", "host=localhost port=5432 user=postgres password=postgres dbname=tesoreria sslmode=disable"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		ReadTimeoutSecs:  getEnvInt("READ_TIMEOUT_SECS", 10),
		WriteTimeoutSecs: getEnvInt("WRITE_TIMEOUT_SECS", 10),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid port %q", cfg.Port)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultVal
}
